package product

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Repository reads products for catalog and dashboard views.
type Repository struct {
	repo.Base
	metrics *metrics.CatalogMetrics
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithMetrics returns a repository that records list query metrics.
func (r *Repository) WithMetrics(m *metrics.CatalogMetrics) *Repository {
	return &Repository{Base: r.Base, metrics: m}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx), metrics: r.metrics}
}

// FindByID loads the product without its store.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindSummary loads one product joined with its store. Returns gorm.ErrRecordNotFound when absent.
func (r *Repository) FindSummary(ctx context.Context, id int64, scope ListScope) (*ProductSummary, error) {
	var records []productSummaryRecord
	err := productBase(scope, listquery.Filters{})(r.DB(ctx)).
		Select(listquery.SelectClause(productColumns)).
		Where("p.id = ?", id).
		Limit(1).
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	summary := records[0].toSummary()
	return &summary, nil
}

// ListSummaries returns a page of products within scope.
func (r *Repository) ListSummaries(ctx context.Context, scope ListScope, params listquery.Params, consistent bool) (listquery.Page[ProductSummary], error) {
	page, err := listquery.Run[productSummaryRecord](ctx, r.Conn(), listquery.Query{
		Entity:     "products",
		Params:     params,
		Base:       productBase(scope, params.Filters),
		Columns:    productColumns,
		Tiebreak:   []string{"p.id"},
		Consistent: consistent,
		Metrics:    r.metrics,
	})
	if err != nil {
		return listquery.Page[ProductSummary]{}, err
	}
	return listquery.MapPage(page, productSummaryRecord.toSummary), nil
}
