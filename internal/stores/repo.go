package stores

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Repository handles store persistence.
type Repository struct {
	repo.Base
	metrics *metrics.CatalogMetrics
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithMetrics returns a repository that records list query metrics.
func (r *Repository) WithMetrics(m *metrics.CatalogMetrics) *Repository {
	return &Repository{Base: r.Base, metrics: m}
}

// Create persists a new store row.
func (r *Repository) Create(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return r.DB(ctx).Create(store).Error
}

// FindByID loads a store by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Store, error) {
	var store models.Store
	if err := r.DB(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// Update saves the provided store.
func (r *Repository) Update(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return r.DB(ctx).Save(store).Error
}

// ExistsWithName reports whether another store already uses name, ignoring case.
// excludeID skips the store being renamed.
func (r *Repository) ExistsWithName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	qb := r.DB(ctx).Model(&models.Store{}).Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID > 0 {
		qb = qb.Where("id <> ?", excludeID)
	}
	if err := qb.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindPayment loads the payments row for a store. Returns gorm.ErrRecordNotFound when
// the store never started onboarding.
func (r *Repository) FindPayment(ctx context.Context, storeID int64) (*models.Payment, error) {
	var payment models.Payment
	if err := r.DB(ctx).Where("store_id = ?", storeID).Order("id DESC").First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListSummaries returns a page of stores with product counts.
func (r *Repository) ListSummaries(ctx context.Context, scope ListScope, params listquery.Params, consistent bool) (listquery.Page[StoreSummary], error) {
	page, err := listquery.Run[storeSummaryRecord](ctx, r.Conn(), listquery.Query{
		Entity:     "stores",
		Params:     params,
		Base:       storeBase(scope, params.Filters),
		Columns:    storeColumns,
		Tiebreak:   []string{"s.id"},
		Grouped:    true,
		Consistent: consistent,
		Metrics:    r.metrics,
	})
	if err != nil {
		return listquery.Page[StoreSummary]{}, err
	}
	return listquery.MapPage(page, storeSummaryRecord.toSummary), nil
}
