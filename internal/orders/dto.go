package orders

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/angelmondragon/storefront-backend/pkg/db/types"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// OrderSummary is one row of the store orders table or a buyer's purchase history.
type OrderSummary struct {
	ID        int64           `json:"id"`
	StoreID   int64           `json:"store_id"`
	StoreName string          `json:"store_name"`
	Quantity  *int            `json:"quantity,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	CreatedAt time.Time       `json:"created_at"`
}

// CustomerSummary is one buyer rolled up across a store's orders.
type CustomerSummary struct {
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	OrderCount  int64           `json:"order_count"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	LastOrderAt *time.Time      `json:"last_order_at,omitempty"`
}

// LineItem is an order snapshot entry joined with the product's current catalog data.
// Price is the price paid when the snapshot recorded one; PriceFromSnapshot is false
// when it fell back to the current product price.
type LineItem struct {
	ProductID            int64               `json:"product_id"`
	Name                 string              `json:"name"`
	Images               types.ProductImages `json:"images"`
	Category             string              `json:"category"`
	Subcategory          *string             `json:"subcategory,omitempty"`
	Price                decimal.Decimal     `json:"price"`
	PriceFromSnapshot    bool                `json:"price_from_snapshot"`
	CurrentPrice         decimal.Decimal     `json:"current_price"`
	Quantity             int                 `json:"quantity"`
	StoreID              int64               `json:"store_id"`
	StoreName            string              `json:"store_name"`
	StoreStripeAccountID *string             `json:"store_stripe_account_id,omitempty"`
}

// AddressDTO is the shipping address attached to an order.
type AddressDTO struct {
	Line1      *string `json:"line1,omitempty"`
	Line2      *string `json:"line2,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Country    *string `json:"country,omitempty"`
}

// OrderDetail is a single order with resolved line items.
type OrderDetail struct {
	OrderSummary
	Address *AddressDTO `json:"address,omitempty"`
	Items   []LineItem  `json:"items"`
}

type orderSummaryRecord struct {
	ID        int64
	StoreID   int64
	StoreName string
	Quantity  sql.NullInt64
	Amount    decimal.Decimal
	Status    string
	Name      string
	Email     string
	CreatedAt time.Time
}

func (r orderSummaryRecord) toSummary() OrderSummary {
	var quantity *int
	if r.Quantity.Valid {
		q := int(r.Quantity.Int64)
		quantity = &q
	}
	return OrderSummary{
		ID:        r.ID,
		StoreID:   r.StoreID,
		StoreName: r.StoreName,
		Quantity:  quantity,
		Amount:    r.Amount,
		Status:    r.Status,
		Name:      r.Name,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
	}
}

type customerRecord struct {
	Email       string
	Name        string
	OrderCount  int64
	TotalSpent  decimal.NullDecimal
	LastOrderAt dbtypes.Time
}

func (r customerRecord) toSummary() CustomerSummary {
	total := decimal.Zero
	if r.TotalSpent.Valid {
		total = r.TotalSpent.Decimal
	}
	return CustomerSummary{
		Email:       r.Email,
		Name:        r.Name,
		OrderCount:  r.OrderCount,
		TotalSpent:  total,
		LastOrderAt: r.LastOrderAt.Ptr(),
	}
}
