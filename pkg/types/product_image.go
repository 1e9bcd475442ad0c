package types

import "database/sql/driver"

// ProductImage is one entry of the ordered products.images json column.
type ProductImage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ProductImages preserves upload order.
type ProductImages []ProductImage

// Value serializes the items to JSON.
func (c ProductImages) Value() (driver.Value, error) {
	return jsonValue(c, "[]")
}

// Scan decodes a JSON column into the items.
func (c *ProductImages) Scan(value interface{}) error {
	*c = nil
	return scanJSON(value, c)
}
