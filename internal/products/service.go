package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
	"github.com/angelmondragon/storefront-backend/pkg/visibility"
)

// Service exposes catalog reads for shoppers and sellers.
type Service interface {
	ListCatalog(ctx context.Context, params listquery.Params) (listquery.Page[ProductSummary], error)
	ListStoreCatalog(ctx context.Context, storeID int64, params listquery.Params) (listquery.Page[ProductSummary], error)
	ListDashboard(ctx context.Context, userID string, storeID int64, params listquery.Params) (listquery.Page[ProductSummary], error)
	GetProduct(ctx context.Context, id int64) (*ProductSummary, error)
}

type storeLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Store, error)
}

type service struct {
	repo      *Repository
	storeRepo storeLoader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, storeRepo storeLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if storeRepo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo, storeRepo: storeRepo}, nil
}

// ListCatalog lists products of every active store. Page and count run as two
// independent statements.
func (s *service) ListCatalog(ctx context.Context, params listquery.Params) (listquery.Page[ProductSummary], error) {
	return s.repo.ListSummaries(ctx, ListScope{ActiveStoresOnly: true}, params, false)
}

func (s *service) ListStoreCatalog(ctx context.Context, storeID int64, params listquery.Params) (listquery.Page[ProductSummary], error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return listquery.Page[ProductSummary]{}, err
	}
	if err := visibility.EnsureStoreVisible(visibility.StoreVisibilityInput{Store: store}); err != nil {
		return listquery.Page[ProductSummary]{}, err
	}
	return s.repo.ListSummaries(ctx, ListScope{StoreID: &store.ID}, params, false)
}

// ListDashboard lists the products of a store owned by userID, including inactive stores.
func (s *service) ListDashboard(ctx context.Context, userID string, storeID int64, params listquery.Params) (listquery.Page[ProductSummary], error) {
	if strings.TrimSpace(userID) == "" {
		return listquery.Page[ProductSummary]{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return listquery.Page[ProductSummary]{}, err
	}
	if err := visibility.EnsureStoreVisible(visibility.StoreVisibilityInput{Store: store, OwnerID: userID}); err != nil {
		return listquery.Page[ProductSummary]{}, err
	}
	return s.repo.ListSummaries(ctx, ListScope{StoreID: &store.ID}, params, true)
}

func (s *service) GetProduct(ctx context.Context, id int64) (*ProductSummary, error) {
	summary, err := s.repo.FindSummary(ctx, id, ListScope{ActiveStoresOnly: true})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return summary, nil
}

func (s *service) loadStore(ctx context.Context, storeID int64) (*models.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return store, nil
}
