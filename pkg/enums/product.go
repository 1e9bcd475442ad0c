package enums

import "fmt"

// ProductCategory mirrors the category enum stored on products.
type ProductCategory string

const (
	ProductCategorySkateboards ProductCategory = "skateboards"
	ProductCategoryClothing    ProductCategory = "clothing"
	ProductCategoryShoes       ProductCategory = "shoes"
	ProductCategoryAccessories ProductCategory = "accessories"
)

var validProductCategories = []ProductCategory{
	ProductCategorySkateboards,
	ProductCategoryClothing,
	ProductCategoryShoes,
	ProductCategoryAccessories,
}

// subcategoriesByCategory lists the slugs the catalog offers under each category.
var subcategoriesByCategory = map[ProductCategory][]string{
	ProductCategorySkateboards: {"decks", "wheels", "trucks", "bearings", "griptape", "hardware", "tools"},
	ProductCategoryClothing:    {"beanies", "hoodies", "pants", "shirts", "shorts", "jackets"},
	ProductCategoryShoes:       {"low-tops", "high-tops", "slip-ons", "pros", "classics"},
	ProductCategoryAccessories: {"skate-tools", "bags", "socks", "belts", "wax"},
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// Subcategories returns the subcategory slugs offered for the category.
func (c ProductCategory) Subcategories() []string {
	return subcategoriesByCategory[c]
}

// HasSubcategory reports whether slug belongs to the category.
func (c ProductCategory) HasSubcategory(slug string) bool {
	for _, candidate := range subcategoriesByCategory[c] {
		if candidate == slug {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductCategories returns the full category enum in declaration order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}
