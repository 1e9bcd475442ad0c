package cart

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/internal/lineitems"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// LineItem is a cart entry enriched with live product and store data.
type LineItem struct {
	ProductID            int64               `json:"product_id"`
	Name                 string              `json:"name"`
	Description          *string             `json:"description,omitempty"`
	Images               types.ProductImages `json:"images"`
	Category             string              `json:"category"`
	Subcategory          *string             `json:"subcategory,omitempty"`
	Price                decimal.Decimal     `json:"price"`
	Inventory            int                 `json:"inventory"`
	Quantity             int                 `json:"quantity"`
	StoreID              int64               `json:"store_id"`
	StoreName            string              `json:"store_name"`
	StoreStripeAccountID *string             `json:"store_stripe_account_id,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
}

func newLineItem(row lineitems.ProductRow, quantity int) LineItem {
	return LineItem{
		ProductID:            row.ID,
		Name:                 row.Name,
		Description:          row.Description,
		Images:               row.Images,
		Category:             row.Category,
		Subcategory:          row.Subcategory,
		Price:                row.Price,
		Inventory:            row.Inventory,
		Quantity:             quantity,
		StoreID:              row.StoreID,
		StoreName:            row.StoreName,
		StoreStripeAccountID: row.StoreStripeAccountID,
		CreatedAt:            row.CreatedAt,
	}
}

// CartDTO is the persisted cart state returned by mutations.
type CartDTO struct {
	ID    int64           `json:"id"`
	Items types.CartItems `json:"items"`
}

// ParseCartID turns the raw cookie value into a cart id. Anything that is not a
// positive integer reports false.
func ParseCartID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
