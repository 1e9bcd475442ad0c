package cart

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/lineitems"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Resolver turns a persisted cart into line items. It never writes.
type Resolver struct {
	db      *gorm.DB
	carts   CartRepository
	metrics *metrics.CatalogMetrics
}

// NewResolver builds a resolver over conn. metrics may be nil.
func NewResolver(conn *gorm.DB, m *metrics.CatalogMetrics) *Resolver {
	return &Resolver{db: conn, carts: NewRepository(conn), metrics: m}
}

// Resolve returns the line items of the cart identified by rawCartID. A missing,
// malformed, unknown or closed cart resolves to an empty list. Items whose product no longer
// exists are dropped. When storeID is set only that store's items are returned.
func (r *Resolver) Resolve(ctx context.Context, rawCartID string, storeID *int64) ([]LineItem, error) {
	cartID, ok := ParseCartID(rawCartID)
	if !ok {
		return []LineItem{}, nil
	}

	cart, err := r.carts.FindByID(ctx, cartID)
	if err != nil {
		if db.IsNotFound(err) {
			return []LineItem{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if cart.Closed {
		return []LineItem{}, nil
	}

	ids := cart.Items.ProductIDs()
	if len(ids) == 0 {
		return []LineItem{}, nil
	}

	rows, err := lineitems.LoadProducts(ctx, r.db, ids, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
	}

	quantities := cart.Items.QuantityByProduct()
	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, newLineItem(row, quantities[row.ID]))
	}

	if storeID == nil {
		r.metrics.AddStaleItems("cart", len(ids)-len(rows))
	}
	return items, nil
}
