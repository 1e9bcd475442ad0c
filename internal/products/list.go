package product

import (
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
)

var productColumns = []listquery.Column{
	{Expr: "p.id", As: "id"},
	{Field: "name", Expr: "p.name", As: "name"},
	{Expr: "p.description", As: "description"},
	{Expr: "p.images", As: "images"},
	{Expr: "p.category", As: "category"},
	{Expr: "p.subcategory", As: "subcategory"},
	{Field: "price", Expr: "p.price", As: "price"},
	{Field: "inventory", Expr: "p.inventory", As: "inventory"},
	{Field: "rating", Expr: "p.rating", As: "rating"},
	{Expr: "p.tags", As: "tags"},
	{Expr: "p.store_id", As: "store_id"},
	{Expr: "s.name", As: "store_name"},
	{Field: "createdAt", Expr: "p.created_at", As: "created_at"},
	{Expr: "p.updated_at", As: "updated_at"},
}

// CatalogSchema drives the public catalog and store pages.
var CatalogSchema = listquery.Schema{
	DefaultLimit: 8,
	DefaultSort:  listquery.Sort{Field: "createdAt", Direction: enums.SortDesc},
	SortFields:   listquery.SortFields(productColumns),
}

// DashboardSchema drives the seller's product table.
var DashboardSchema = CatalogSchema.WithDefaultLimit(10)

// ListScope narrows a product list before user filters apply.
type ListScope struct {
	StoreID          *int64
	ActiveStoresOnly bool
}

func productBase(scope ListScope, f listquery.Filters) func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		qb := tx.Table("products p").Joins("JOIN stores s ON s.id = p.store_id")

		if scope.StoreID != nil {
			qb = qb.Where("p.store_id = ?", *scope.StoreID)
		}
		if scope.ActiveStoresOnly {
			qb = qb.Where("s.active = ?", true)
		}

		if name := strings.TrimSpace(f.Name); name != "" {
			qb = qb.Where("LOWER(p.name) LIKE ?"+listquery.LikeEscape, listquery.ContainsPattern(name))
		}
		categories := validCategories(f.Categories)
		if len(categories) > 0 {
			qb = qb.Where("p.category IN ?", categories)
		}
		if subcategories := validSubcategories(f.Subcategories, categories); len(subcategories) > 0 {
			qb = qb.Where("p.subcategory IN ?", subcategories)
		}
		if f.PriceMin != nil {
			qb = qb.Where("p.price >= ?", *f.PriceMin)
		}
		if f.PriceMax != nil {
			qb = qb.Where("p.price <= ?", *f.PriceMax)
		}
		if len(f.StoreIDs) > 0 {
			qb = qb.Where("p.store_id IN ?", f.StoreIDs)
		}
		return qb
	}
}

// validCategories drops values outside the category enum.
func validCategories(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, value := range raw {
		category, err := enums.ParseProductCategory(value)
		if err != nil {
			continue
		}
		out = append(out, string(category))
	}
	return out
}

// validSubcategories keeps slugs that belong to one of the selected categories, or to
// any category when none is selected.
func validSubcategories(raw []string, categories []string) []string {
	scope := enums.ProductCategories()
	if len(categories) > 0 {
		scope = make([]enums.ProductCategory, 0, len(categories))
		for _, c := range categories {
			scope = append(scope, enums.ProductCategory(c))
		}
	}
	out := make([]string, 0, len(raw))
	for _, slug := range raw {
		for _, category := range scope {
			if category.HasSubcategory(slug) {
				out = append(out, slug)
				break
			}
		}
	}
	return out
}
