package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItemsProductIDsDistinct(t *testing.T) {
	items := CartItems{
		{ProductID: 3, Quantity: 1},
		{ProductID: 1, Quantity: 2},
		{ProductID: 3, Quantity: 4},
	}
	assert.Equal(t, []int64{3, 1}, items.ProductIDs())
	assert.Equal(t, map[int64]int{3: 5, 1: 2}, items.QuantityByProduct())
	assert.Equal(t, 1, items.Find(1))
	assert.Equal(t, -1, items.Find(9))
}

func TestCartItemsJSONShape(t *testing.T) {
	var items CartItems
	require.NoError(t, json.Unmarshal([]byte(`[{"productId":7,"quantity":2}]`), &items))
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ProductID)
	assert.Nil(t, items[0].Subcategory)
}

func TestCheckoutItemsPriceOptional(t *testing.T) {
	var items CheckoutItems
	require.NoError(t, json.Unmarshal([]byte(`[{"productId":1,"price":"12.50","quantity":1},{"productId":2,"quantity":3}]`), &items))
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Price)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("12.5")))
	assert.Nil(t, items[1].Price)
}

func TestCheckoutItemsByProductMergesDuplicates(t *testing.T) {
	price := decimal.NewFromInt(4)
	items := CheckoutItems{
		{ProductID: 1, Quantity: 1},
		{ProductID: 1, Quantity: 2, Price: &price},
	}
	merged := items.ByProduct()
	require.Contains(t, merged, int64(1))
	assert.Equal(t, 3, merged[1].Quantity)
	require.NotNil(t, merged[1].Price)
	assert.True(t, merged[1].Price.Equal(price))
}

func TestJSONColumnsRoundTripThroughDriverValues(t *testing.T) {
	items := CartItems{{ProductID: 4, Quantity: 3}}
	value, err := items.Value()
	require.NoError(t, err)
	assert.Equal(t, `[{"productId":4,"quantity":3}]`, value)

	var scanned CartItems
	require.NoError(t, scanned.Scan([]byte(value.(string))))
	assert.Equal(t, items, scanned)

	var empty CartItems
	value, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)

	var tags StringList
	require.Error(t, tags.Scan(42))
	require.NoError(t, tags.Scan(`["street","deck"]`))
	assert.Equal(t, StringList{"street", "deck"}, tags)
}
