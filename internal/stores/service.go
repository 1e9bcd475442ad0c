package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
	"github.com/angelmondragon/storefront-backend/pkg/visibility"
)

type storeRepository interface {
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id int64) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	ExistsWithName(ctx context.Context, name string, excludeID int64) (bool, error)
	FindPayment(ctx context.Context, storeID int64) (*models.Payment, error)
	ListSummaries(ctx context.Context, scope ListScope, params listquery.Params, consistent bool) (listquery.Page[StoreSummary], error)
}

// Service exposes store directory and seller store management.
type Service interface {
	ListDirectory(ctx context.Context, params listquery.Params) (listquery.Page[StoreSummary], error)
	ListOwned(ctx context.Context, userID string, params listquery.Params) (listquery.Page[StoreSummary], error)
	GetOwned(ctx context.Context, userID string, storeID int64) (*StoreDTO, error)
	Create(ctx context.Context, userID string, input CreateStoreInput) (*StoreDTO, error)
	Update(ctx context.Context, userID string, storeID int64, input UpdateStoreInput) (*StoreDTO, error)
}

// CreateStoreInput holds the validated payload to create a store.
type CreateStoreInput struct {
	Name        string
	Description *string
}

// UpdateStoreInput captures the allowed store fields for mutation.
type UpdateStoreInput struct {
	Name        *string
	Description *string
	Active      *bool
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListDirectory(ctx context.Context, params listquery.Params) (listquery.Page[StoreSummary], error) {
	return s.repo.ListSummaries(ctx, ListScope{ActiveOnly: true}, params, false)
}

func (s *service) ListOwned(ctx context.Context, userID string, params listquery.Params) (listquery.Page[StoreSummary], error) {
	if strings.TrimSpace(userID) == "" {
		return listquery.Page[StoreSummary]{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	return s.repo.ListSummaries(ctx, ListScope{UserID: userID}, params, true)
}

// GetOwned returns the store with its payment onboarding status.
func (s *service) GetOwned(ctx context.Context, userID string, storeID int64) (*StoreDTO, error) {
	store, err := s.loadOwned(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	dto := FromModel(store)
	payment, err := s.repo.FindPayment(ctx, storeID)
	switch {
	case err == nil:
		dto.Payment = paymentFromModel(payment)
	case db.IsNotFound(err):
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store payment")
	}
	return dto, nil
}

func (s *service) Create(ctx context.Context, userID string, input CreateStoreInput) (*StoreDTO, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := s.ensureNameAvailable(ctx, name, 0); err != nil {
		return nil, err
	}

	slug := Slugify(name)
	store := &models.Store{
		UserID:      userID,
		Name:        name,
		Description: input.Description,
		Slug:        &slug,
	}
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return FromModel(store), nil
}

func (s *service) Update(ctx context.Context, userID string, storeID int64, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.loadOwned(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		if !strings.EqualFold(name, store.Name) {
			if err := s.ensureNameAvailable(ctx, name, store.ID); err != nil {
				return nil, err
			}
		}
		slug := Slugify(name)
		store.Name = name
		store.Slug = &slug
	}
	if input.Description != nil {
		store.Description = input.Description
	}
	if input.Active != nil {
		store.Active = *input.Active
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) ensureNameAvailable(ctx context.Context, name string, excludeID int64) error {
	taken, err := s.repo.ExistsWithName(ctx, name, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check store name")
	}
	if taken {
		return pkgerrors.New(pkgerrors.CodeConflict, "a store with this name already exists").
			WithDetails(map[string]string{"name": name})
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, userID string, storeID int64) (*models.Store, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if err := visibility.EnsureStoreVisible(visibility.StoreVisibilityInput{Store: store, OwnerID: userID}); err != nil {
		return nil, err
	}
	return store, nil
}

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
