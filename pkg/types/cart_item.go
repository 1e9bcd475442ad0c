package types

import "database/sql/driver"

// CartItem is one entry of the carts.items json column.
type CartItem struct {
	ProductID   int64   `json:"productId"`
	Quantity    int     `json:"quantity"`
	Subcategory *string `json:"subcategory,omitempty"`
}

// CartItems keeps the order in which products were added.
type CartItems []CartItem

// ProductIDs returns the distinct product ids referenced by the items, first occurrence first.
func (c CartItems) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(c))
	ids := make([]int64, 0, len(c))
	for _, item := range c {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// QuantityByProduct sums quantities per product id.
func (c CartItems) QuantityByProduct() map[int64]int {
	out := make(map[int64]int, len(c))
	for _, item := range c {
		out[item.ProductID] += item.Quantity
	}
	return out
}

// Find returns the index of the item for productID or -1.
func (c CartItems) Find(productID int64) int {
	for i, item := range c {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Value serializes the items to JSON.
func (c CartItems) Value() (driver.Value, error) {
	return jsonValue(c, "[]")
}

// Scan decodes a JSON column into the items.
func (c *CartItems) Scan(value interface{}) error {
	*c = nil
	return scanJSON(value, c)
}
