package cart

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

var seedTime = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func seedStore(t *testing.T, db *gorm.DB, name string, stripeAccountID *string) *models.Store {
	t.Helper()
	store := &models.Store{UserID: "seller", Name: name, Active: true, StripeAccountID: stripeAccountID}
	require.NoError(t, db.Create(store).Error)
	return store
}

func seedProduct(t *testing.T, db *gorm.DB, storeID int64, name string, inventory int, offset int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:      name,
		Category:  enums.ProductCategorySkateboards,
		Price:     decimal.RequireFromString("25.00"),
		Inventory: inventory,
		StoreID:   storeID,
		CreatedAt: seedTime.Add(time.Duration(offset) * time.Minute),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCart(t *testing.T, db *gorm.DB, items types.CartItems) string {
	t.Helper()
	cart := &models.Cart{Items: items}
	require.NoError(t, db.Create(cart).Error)
	return strconv.FormatInt(cart.ID, 10)
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func testCtx() context.Context {
	return context.Background()
}
