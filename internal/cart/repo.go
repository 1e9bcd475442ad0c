package cart

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// CartRepository exposes persistence operations for anonymous carts.
type CartRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	SaveItems(ctx context.Context, id int64, items types.CartItems) error
	WithTx(tx *gorm.DB) CartRepository
}

// Repository is the GORM-backed CartRepository.
type Repository struct {
	repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{Base: repo.NewBase(tx)}
}

// FindByID loads a cart by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB(ctx).First(&cart, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// Create inserts a new cart.
func (r *Repository) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if cart.Items == nil {
		cart.Items = types.CartItems{}
	}
	if err := r.DB(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// SaveItems overwrites the cart's item list. Concurrent writers race; the last one wins.
func (r *Repository) SaveItems(ctx context.Context, id int64, items types.CartItems) error {
	if items == nil {
		items = types.CartItems{}
	}
	res := r.DB(ctx).Model(&models.Cart{}).Where("id = ?", id).Update("items", items)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
