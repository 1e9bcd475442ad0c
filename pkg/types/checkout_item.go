package types

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// CheckoutItem is one entry of the frozen orders.items snapshot. Price is absent on
// orders written by call sites that only captured product id and quantity.
type CheckoutItem struct {
	ProductID int64            `json:"productId"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Quantity  int              `json:"quantity"`
}

// CheckoutItems is the ordered order snapshot.
type CheckoutItems []CheckoutItem

// ProductIDs returns the distinct product ids in snapshot order.
func (c CheckoutItems) ProductIDs() []int64 {
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

// ByProduct indexes the snapshot by product id; later duplicates add quantity and keep the first price.
func (c CheckoutItems) ByProduct() map[int64]CheckoutItem {
	out := make(map[int64]CheckoutItem, len(c))
	for _, item := range c {
		existing, ok := out[item.ProductID]
		if !ok {
			out[item.ProductID] = item
			continue
		}
		existing.Quantity += item.Quantity
		if existing.Price == nil {
			existing.Price = item.Price
		}
		out[item.ProductID] = existing
	}
	return out
}

// Value serializes the snapshot to JSON.
func (c CheckoutItems) Value() (driver.Value, error) {
	return jsonValue(c, "[]")
}

// Scan decodes a JSON column into the snapshot.
func (c *CheckoutItems) Scan(value interface{}) error {
	*c = nil
	return scanJSON(value, c)
}
