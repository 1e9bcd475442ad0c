package orders

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Repository reads orders and customer rollups.
type Repository struct {
	repo.Base
	metrics *metrics.CatalogMetrics
}

// NewRepository binds a GORM DB to order reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithMetrics returns a repository that records list query metrics.
func (r *Repository) WithMetrics(m *metrics.CatalogMetrics) *Repository {
	return &Repository{Base: r.Base, metrics: m}
}

// FindForStore loads an order that belongs to storeID.
func (r *Repository) FindForStore(ctx context.Context, storeID, orderID int64) (*models.Order, error) {
	var order models.Order
	if err := r.DB(ctx).Where("id = ? AND store_id = ?", orderID, storeID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindForBuyer loads an order placed under email.
func (r *Repository) FindForBuyer(ctx context.Context, email string, orderID int64) (*models.Order, error) {
	var order models.Order
	if err := r.DB(ctx).
		Where("id = ? AND LOWER(email) = ?", orderID, strings.ToLower(strings.TrimSpace(email))).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindAddress loads an order's shipping address.
func (r *Repository) FindAddress(ctx context.Context, id int64) (*models.Address, error) {
	var address models.Address
	if err := r.DB(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// FindStoreName returns the display name of a store.
func (r *Repository) FindStoreName(ctx context.Context, storeID int64) (string, error) {
	var store models.Store
	if err := r.DB(ctx).Select("id", "name").First(&store, "id = ?", storeID).Error; err != nil {
		return "", err
	}
	return store.Name, nil
}

// ListStoreOrders pages a store's orders.
func (r *Repository) ListStoreOrders(ctx context.Context, storeID int64, params listquery.Params) (listquery.Page[OrderSummary], error) {
	return r.listOrders(ctx, "orders", orderScope{storeID: &storeID}, params)
}

// ListPurchases pages orders placed under a buyer email across stores.
func (r *Repository) ListPurchases(ctx context.Context, email string, params listquery.Params) (listquery.Page[OrderSummary], error) {
	return r.listOrders(ctx, "purchases", orderScope{buyerEmail: strings.TrimSpace(email)}, params)
}

func (r *Repository) listOrders(ctx context.Context, entity string, scope orderScope, params listquery.Params) (listquery.Page[OrderSummary], error) {
	page, err := listquery.Run[orderSummaryRecord](ctx, r.Conn(), listquery.Query{
		Entity:     entity,
		Params:     params,
		Base:       orderBase(scope, params.Filters),
		Columns:    orderColumns,
		Tiebreak:   []string{"o.id"},
		Consistent: true,
		Metrics:    r.metrics,
	})
	if err != nil {
		return listquery.Page[OrderSummary]{}, err
	}
	return listquery.MapPage(page, orderSummaryRecord.toSummary), nil
}

// ListCustomers pages the buyers of a store grouped by (email, name).
func (r *Repository) ListCustomers(ctx context.Context, storeID int64, params listquery.Params) (listquery.Page[CustomerSummary], error) {
	page, err := listquery.Run[customerRecord](ctx, r.Conn(), listquery.Query{
		Entity:     "customers",
		Params:     params,
		Base:       customerBase(storeID, params.Filters),
		Columns:    customerColumns,
		Tiebreak:   []string{"o.email", "o.name"},
		Grouped:    true,
		Consistent: true,
		Metrics:    r.metrics,
	})
	if err != nil {
		return listquery.Page[CustomerSummary]{}, err
	}
	return listquery.MapPage(page, customerRecord.toSummary), nil
}
