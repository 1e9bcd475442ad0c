package stores

import (
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
)

var storeColumns = []listquery.Column{
	{Expr: "s.id", As: "id"},
	{Field: "name", Expr: "s.name", As: "name"},
	{Expr: "s.description", As: "description"},
	{Expr: "s.slug", As: "slug"},
	{Expr: "s.active", As: "active"},
	{Expr: "s.stripe_account_id", As: "stripe_account_id"},
	{Field: "productCount", Expr: "COUNT(p.id)", As: "product_count"},
	{Field: "createdAt", Expr: "s.created_at", As: "created_at"},
}

// DirectorySchema drives the public store directory and the seller's store table.
var DirectorySchema = listquery.Schema{
	DefaultLimit: 8,
	DefaultSort:  listquery.Sort{Field: "createdAt", Direction: enums.SortDesc},
	SortFields:   listquery.SortFields(storeColumns),
}

// ListScope narrows a store list before user filters apply.
type ListScope struct {
	UserID     string
	ActiveOnly bool
}

func storeBase(scope ListScope, f listquery.Filters) func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		qb := tx.Table("stores s").Joins("LEFT JOIN products p ON p.store_id = s.id")

		if scope.UserID != "" {
			qb = qb.Where("s.user_id = ?", scope.UserID)
		}
		if scope.ActiveOnly {
			qb = qb.Where("s.active = ?", true)
		} else if active, ok := activeFilter(f.Statuses); ok {
			qb = qb.Where("s.active = ?", active)
		}
		if name := strings.TrimSpace(f.Name); name != "" {
			qb = qb.Where("LOWER(s.name) LIKE ?"+listquery.LikeEscape, listquery.ContainsPattern(name))
		}
		return qb.Group("s.id")
	}
}

// activeFilter collapses a statuses list into a single active predicate. Both or
// neither status selected means no filter.
func activeFilter(statuses []string) (bool, bool) {
	var wantActive, wantInactive bool
	for _, raw := range statuses {
		status, err := enums.ParseStoreStatus(raw)
		if err != nil {
			continue
		}
		if status.Active() {
			wantActive = true
		} else {
			wantInactive = true
		}
	}
	if wantActive == wantInactive {
		return false, false
	}
	return wantActive, true
}
