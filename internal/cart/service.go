package cart

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

// Service mutates anonymous carts.
type Service interface {
	AddItem(ctx context.Context, rawCartID string, input AddItemInput) (*CartDTO, error)
	UpdateItem(ctx context.Context, rawCartID string, productID int64, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, rawCartID string, productID int64) (*CartDTO, error)
	Clear(ctx context.Context, rawCartID string) (*CartDTO, error)
}

// AddItemInput holds a validated add-to-cart request.
type AddItemInput struct {
	ProductID   int64
	Quantity    int
	Subcategory *string
}

type service struct {
	repo     CartRepository
	tx       txRunner
	products productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, tx: tx, products: products}, nil
}

// AddItem adds quantity of a product, creating a cart when rawCartID does not name an
// open one. The combined quantity may not exceed the product's inventory.
func (s *service) AddItem(ctx context.Context, rawCartID string, input AddItemInput) (*CartDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.loadProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	var result *CartDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := s.openCart(ctx, repo, rawCartID)
		if err != nil {
			return err
		}

		items := append(types.CartItems{}, cart.Items...)
		idx := items.Find(input.ProductID)
		quantity := input.Quantity
		if idx >= 0 {
			quantity += items[idx].Quantity
		}
		if err := checkInventory(product, quantity); err != nil {
			return err
		}

		if idx >= 0 {
			items[idx].Quantity = quantity
			if input.Subcategory != nil {
				items[idx].Subcategory = input.Subcategory
			}
		} else {
			items = append(items, types.CartItem{
				ProductID:   input.ProductID,
				Quantity:    quantity,
				Subcategory: input.Subcategory,
			})
		}

		if err := repo.SaveItems(ctx, cart.ID, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
		}
		result = &CartDTO{ID: cart.ID, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateItem sets the quantity of a product already in the cart. Zero removes it.
func (s *service) UpdateItem(ctx context.Context, rawCartID string, productID int64, quantity int) (*CartDTO, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, rawCartID, productID)
	}

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var result *CartDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cart, err := s.existingCart(ctx, repo, rawCartID)
		if err != nil {
			return err
		}
		items := append(types.CartItems{}, cart.Items...)
		idx := items.Find(productID)
		if idx < 0 {
			return pkgerrors.NotFound("item not in cart")
		}
		if err := checkInventory(product, quantity); err != nil {
			return err
		}

		items[idx].Quantity = quantity
		if err := repo.SaveItems(ctx, cart.ID, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
		}
		result = &CartDTO{ID: cart.ID, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveItem drops every entry for productID. Removing an absent product is a no-op.
func (s *service) RemoveItem(ctx context.Context, rawCartID string, productID int64) (*CartDTO, error) {
	cart, err := s.existingCart(ctx, s.repo, rawCartID)
	if err != nil {
		return nil, err
	}
	items := make(types.CartItems, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	if err := s.repo.SaveItems(ctx, cart.ID, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return &CartDTO{ID: cart.ID, Items: items}, nil
}

func (s *service) Clear(ctx context.Context, rawCartID string) (*CartDTO, error) {
	cart, err := s.existingCart(ctx, s.repo, rawCartID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveItems(ctx, cart.ID, types.CartItems{}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return &CartDTO{ID: cart.ID, Items: types.CartItems{}}, nil
}

func (s *service) openCart(ctx context.Context, repo CartRepository, rawCartID string) (*models.Cart, error) {
	if id, ok := ParseCartID(rawCartID); ok {
		cart, err := repo.FindByID(ctx, id)
		switch {
		case err == nil && !cart.Closed:
			return cart, nil
		case err != nil && !db.IsNotFound(err):
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
	}
	cart, err := repo.Create(ctx, &models.Cart{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	return cart, nil
}

func (s *service) existingCart(ctx context.Context, repo CartRepository, rawCartID string) (*models.Cart, error) {
	id, ok := ParseCartID(rawCartID)
	if !ok {
		return nil, pkgerrors.NotFound("cart not found")
	}
	cart, err := repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if cart.Closed {
		return nil, pkgerrors.NotFound("cart not found")
	}
	return cart, nil
}

func (s *service) loadProduct(ctx context.Context, productID int64) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func checkInventory(product *models.Product, quantity int) error {
	if quantity > product.Inventory {
		return pkgerrors.New(pkgerrors.CodeValidation, "requested quantity exceeds available inventory").
			WithDetails(map[string]int{"available": product.Inventory, "requested": quantity})
	}
	return nil
}
