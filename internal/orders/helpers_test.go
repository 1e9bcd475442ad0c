package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

var orderTime = time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

func mustStore(t *testing.T, db *gorm.DB, userID, name string) *models.Store {
	t.Helper()
	store := &models.Store{UserID: userID, Name: name, Active: true}
	require.NoError(t, db.Create(store).Error)
	return store
}

func mustProduct(t *testing.T, db *gorm.DB, storeID int64, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:      name,
		Category:  enums.ProductCategoryClothing,
		Price:     decimal.RequireFromString(price),
		Inventory: 10,
		StoreID:   storeID,
		CreatedAt: orderTime,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

type orderSeed struct {
	name, email string
	amount      string
	quantity    int
	status      enums.PaymentIntentStatus
	day         int
	items       types.CheckoutItems
	addressID   *int64
}

func mustOrder(t *testing.T, db *gorm.DB, storeID int64, seed orderSeed) *models.Order {
	t.Helper()
	if seed.status == "" {
		seed.status = enums.PaymentIntentStatusSucceeded
	}
	quantity := seed.quantity
	order := &models.Order{
		StoreID:                   storeID,
		Items:                     seed.items,
		Quantity:                  &quantity,
		Amount:                    decimal.RequireFromString(seed.amount),
		StripePaymentIntentID:     "pi_test",
		StripePaymentIntentStatus: seed.status,
		Name:                      seed.name,
		Email:                     seed.email,
		AddressID:                 seed.addressID,
		CreatedAt:                 orderTime.AddDate(0, 0, seed.day),
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

type dbStoreLoader struct {
	db *gorm.DB
}

func (l dbStoreLoader) FindByID(ctx context.Context, id int64) (*models.Store, error) {
	var store models.Store
	if err := l.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}
