package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/lineitems"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Resolver joins an order's frozen item snapshot with the live catalog.
type Resolver struct {
	db      *gorm.DB
	metrics *metrics.CatalogMetrics
}

// NewResolver builds a resolver over db. metrics may be nil.
func NewResolver(db *gorm.DB, m *metrics.CatalogMetrics) *Resolver {
	return &Resolver{db: db, metrics: m}
}

// Resolve returns the order's line items. Snapshot entries whose product was deleted
// are dropped. Quantities always come from the snapshot; the price does too when the
// snapshot captured one.
func (r *Resolver) Resolve(ctx context.Context, order *models.Order) ([]LineItem, error) {
	if order == nil {
		return []LineItem{}, nil
	}
	ids := order.Items.ProductIDs()
	if len(ids) == 0 {
		return []LineItem{}, nil
	}

	rows, err := lineitems.LoadProducts(ctx, r.db, ids, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order products")
	}

	snapshot := order.Items.ByProduct()
	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		entry := snapshot[row.ID]
		item := LineItem{
			ProductID:            row.ID,
			Name:                 row.Name,
			Images:               row.Images,
			Category:             row.Category,
			Subcategory:          row.Subcategory,
			Price:                row.Price,
			CurrentPrice:         row.Price,
			Quantity:             entry.Quantity,
			StoreID:              row.StoreID,
			StoreName:            row.StoreName,
			StoreStripeAccountID: row.StoreStripeAccountID,
		}
		if entry.Price != nil {
			item.Price = *entry.Price
			item.PriceFromSnapshot = true
		}
		items = append(items, item)
	}

	r.metrics.AddStaleItems("order", len(ids)-len(rows))
	return items, nil
}
