package orders

import (
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
)

var orderColumns = []listquery.Column{
	{Expr: "o.id", As: "id"},
	{Expr: "o.store_id", As: "store_id"},
	{Expr: "s.name", As: "store_name"},
	{Field: "quantity", Expr: "o.quantity", As: "quantity"},
	{Field: "amount", Expr: "o.amount", As: "amount"},
	{Field: "status", Expr: "o.stripe_payment_intent_status", As: "status"},
	{Field: "name", Expr: "o.name", As: "name"},
	{Field: "email", Expr: "o.email", As: "email"},
	{Field: "createdAt", Expr: "o.created_at", As: "created_at"},
}

// customerColumns share one expression between projection and ORDER BY so aggregate
// sorts always agree with the displayed values.
var customerColumns = []listquery.Column{
	{Field: "email", Expr: "o.email", As: "email"},
	{Field: "name", Expr: "o.name", As: "name"},
	{Field: "orderCount", Expr: "COUNT(o.id)", As: "order_count"},
	{Field: "totalSpent", Expr: "SUM(o.amount)", As: "total_spent"},
	{Field: "lastOrderAt", Expr: "MAX(o.created_at)", As: "last_order_at"},
}

// OrdersSchema drives the store orders table and the purchase history.
var OrdersSchema = listquery.Schema{
	DefaultLimit: 10,
	DefaultSort:  listquery.Sort{Field: "createdAt", Direction: enums.SortDesc},
	SortFields:   listquery.SortFields(orderColumns),
}

// CustomersSchema drives the store customers table.
var CustomersSchema = listquery.Schema{
	DefaultLimit: 10,
	DefaultSort:  listquery.Sort{Field: "lastOrderAt", Direction: enums.SortDesc},
	SortFields:   listquery.SortFields(customerColumns),
}

// orderScope pins a list to one store or to one buyer email.
type orderScope struct {
	storeID    *int64
	buyerEmail string
}

func orderBase(scope orderScope, f listquery.Filters) func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		qb := tx.Table("orders o").Joins("JOIN stores s ON s.id = o.store_id")
		qb = applyScope(qb, scope)

		if customer := strings.TrimSpace(f.Customer); customer != "" {
			pattern := listquery.ContainsPattern(customer)
			qb = qb.Where("(LOWER(o.name) LIKE ?"+listquery.LikeEscape+" OR LOWER(o.email) LIKE ?"+listquery.LikeEscape+")", pattern, pattern)
		}
		if statuses := validStatuses(f.Statuses); len(statuses) > 0 {
			qb = qb.Where("o.stripe_payment_intent_status IN ?", statuses)
		}
		return applyDateRange(qb, f)
	}
}

func customerBase(storeID int64, f listquery.Filters) func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		qb := applyScope(tx.Table("orders o"), orderScope{storeID: &storeID})
		if email := strings.TrimSpace(f.Email); email != "" {
			qb = qb.Where("LOWER(o.email) LIKE ?"+listquery.LikeEscape, listquery.ContainsPattern(email))
		}
		return applyDateRange(qb, f).Group("o.email, o.name")
	}
}

func applyScope(qb *gorm.DB, scope orderScope) *gorm.DB {
	if scope.storeID != nil {
		qb = qb.Where("o.store_id = ?", *scope.storeID)
	}
	if scope.buyerEmail != "" {
		qb = qb.Where("LOWER(o.email) = ?", strings.ToLower(scope.buyerEmail))
	}
	return qb
}

func applyDateRange(qb *gorm.DB, f listquery.Filters) *gorm.DB {
	if f.From != nil {
		qb = qb.Where("o.created_at >= ?", *f.From)
	}
	if f.To != nil {
		qb = qb.Where("o.created_at <= ?", *f.To)
	}
	return qb
}

func validStatuses(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, value := range raw {
		status, err := enums.ParsePaymentIntentStatus(value)
		if err != nil {
			continue
		}
		out = append(out, string(status))
	}
	return out
}
