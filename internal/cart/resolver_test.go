package cart

import (
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

func TestResolveEmptyForMissingOrMalformedCart(t *testing.T) {
	db := repo.OpenSQLite(t)
	resolver := NewResolver(db, nil)
	empty := seedCart(t, db, types.CartItems{})

	for _, raw := range []string{"", "not-a-number", "-4", "0", "424242", empty} {
		items, err := resolver.Resolve(testCtx(), raw, nil)
		require.NoError(t, err, raw)
		assert.NotNil(t, items, raw)
		assert.Empty(t, items, raw)
	}
}

func TestResolveEmptyForClosedCart(t *testing.T) {
	db := repo.OpenSQLite(t)
	resolver := NewResolver(db, nil)

	store := seedStore(t, db, "Shop", nil)
	product := seedProduct(t, db, store.ID, "widget", 10, 0)
	cart := &models.Cart{Items: types.CartItems{{ProductID: product.ID, Quantity: 1}}, Closed: true}
	require.NoError(t, db.Create(cart).Error)

	items, err := resolver.Resolve(testCtx(), strconv.FormatInt(cart.ID, 10), nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestResolveDropsStaleProducts(t *testing.T) {
	db := repo.OpenSQLite(t)
	reg := prometheus.NewRegistry()
	resolver := NewResolver(db, metrics.NewCatalogMetrics(reg))

	store := seedStore(t, db, "Shop", nil)
	kept := seedProduct(t, db, store.ID, "kept", 10, 0)
	cartID := seedCart(t, db, types.CartItems{
		{ProductID: 987654, Quantity: 1},
		{ProductID: kept.ID, Quantity: 2},
		{ProductID: kept.ID, Quantity: 1},
	})

	items, err := resolver.Resolve(testCtx(), cartID, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "Shop", items[0].StoreName)
	assert.Equal(t, float64(1), counterValue(t, reg, "storefront_stale_line_items_total"))
}

func TestResolveOrdersConnectedStoresFirst(t *testing.T) {
	db := repo.OpenSQLite(t)
	acct := "acct_1"
	plain := seedStore(t, db, "Plain", nil)
	paid := seedStore(t, db, "Paid", &acct)

	older := seedProduct(t, db, plain.ID, "older-unconnected", 5, 0)
	newer := seedProduct(t, db, paid.ID, "newer-connected", 5, 30)
	cartID := seedCart(t, db, types.CartItems{
		{ProductID: older.ID, Quantity: 1},
		{ProductID: newer.ID, Quantity: 4},
	})

	items, err := NewResolver(db, nil).Resolve(testCtx(), cartID, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ProductID)
	require.NotNil(t, items[0].StoreStripeAccountID)
	assert.Equal(t, "acct_1", *items[0].StoreStripeAccountID)
	assert.Equal(t, older.ID, items[1].ProductID)
	assert.Nil(t, items[1].StoreStripeAccountID)

	only, err := NewResolver(db, nil).Resolve(testCtx(), cartID, &plain.ID)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, older.ID, only[0].ProductID)
}
