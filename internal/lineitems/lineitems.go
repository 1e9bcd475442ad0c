// Package lineitems joins product ids from a cart or an order snapshot against the
// live catalog.
package lineitems

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// ProductRow is the current catalog state of one referenced product.
type ProductRow struct {
	ID                   int64
	Name                 string
	Description          *string
	Images               types.ProductImages
	Category             string
	Subcategory          *string
	Price                decimal.Decimal
	Inventory            int
	StoreID              int64
	StoreName            string
	StoreStripeAccountID *string
	CreatedAt            time.Time
}

// Connected reports whether the owning store can take payments.
func (p ProductRow) Connected() bool {
	return p.StoreStripeAccountID != nil && *p.StoreStripeAccountID != ""
}

const connectedFirst = "CASE WHEN s.stripe_account_id IS NULL OR s.stripe_account_id = '' THEN 1 ELSE 0 END"

var productSelect = strings.Join([]string{
	"p.id",
	"p.name",
	"p.description",
	"p.images",
	"p.category",
	"p.subcategory",
	"p.price",
	"p.inventory",
	"p.store_id",
	"s.name AS store_name",
	"s.stripe_account_id AS store_stripe_account_id",
	"p.created_at",
}, ", ")

// LoadProducts fetches the products in ids joined with their store, optionally limited
// to storeID. Rows come back with payment-connected stores first, then oldest product
// first. Ids without a matching product are absent from the result.
func LoadProducts(ctx context.Context, db *gorm.DB, ids []int64, storeID *int64) ([]ProductRow, error) {
	if len(ids) == 0 {
		return []ProductRow{}, nil
	}

	qb := db.WithContext(ctx).
		Table("products p").
		Select(productSelect).
		Joins("JOIN stores s ON s.id = p.store_id").
		Where("p.id IN ?", ids)
	if storeID != nil {
		qb = qb.Where("p.store_id = ?", *storeID)
	}
	qb = qb.Order(connectedFirst + " ASC").Order("p.created_at ASC").Order("p.id ASC")

	var records []productRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	rows := make([]ProductRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.toRow())
	}
	return rows, nil
}

type productRecord struct {
	ID                   int64
	Name                 string
	Description          sql.NullString
	Images               types.ProductImages
	Category             string
	Subcategory          sql.NullString
	Price                decimal.Decimal
	Inventory            int
	StoreID              int64
	StoreName            string
	StoreStripeAccountID sql.NullString
	CreatedAt            time.Time
}

func (r productRecord) toRow() ProductRow {
	images := r.Images
	if images == nil {
		images = types.ProductImages{}
	}
	return ProductRow{
		ID:                   r.ID,
		Name:                 r.Name,
		Description:          nullStringPtr(r.Description),
		Images:               images,
		Category:             r.Category,
		Subcategory:          nullStringPtr(r.Subcategory),
		Price:                r.Price,
		Inventory:            r.Inventory,
		StoreID:              r.StoreID,
		StoreName:            r.StoreName,
		StoreStripeAccountID: nullStringPtr(r.StoreStripeAccountID),
		CreatedAt:            r.CreatedAt,
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
