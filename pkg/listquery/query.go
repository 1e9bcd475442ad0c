package listquery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// Column is one projected expression. Columns with a Field are sortable under that
// name, and the ORDER BY uses the same Expr as the projection.
type Column struct {
	Field string
	Expr  string
	As    string
}

func (c Column) selectClause() string {
	if c.As == "" {
		return c.Expr
	}
	return c.Expr + " AS " + c.As
}

// SortFields lists the sortable field names of cols.
func SortFields(cols []Column) []string {
	fields := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.Field != "" {
			fields = append(fields, c.Field)
		}
	}
	return fields
}

// Query describes a paginated list over a base scope.
type Query struct {
	Entity string
	Params Params
	// Base applies FROM, joins, WHERE and GROUP BY. It is applied separately to the
	// page query and the count query so both share one predicate.
	Base    func(tx *gorm.DB) *gorm.DB
	Columns []Column
	// Tiebreak expressions are appended after the requested sort.
	Tiebreak []string
	// Grouped marks Base as containing a GROUP BY; the count then runs over the grouped rows.
	Grouped bool
	// Consistent runs page and count inside one snapshot transaction.
	Consistent bool
	Metrics    *metrics.CatalogMetrics
}

// Run executes the page query and the count query for q, scanning rows into T.
func Run[T any](ctx context.Context, conn *gorm.DB, q Query) (Page[T], error) {
	if q.Base == nil {
		return Page[T]{}, fmt.Errorf("listquery %s: base scope is required", q.Entity)
	}

	limit := pagination.NormalizeLimit(q.Params.Limit, pagination.DefaultLimit)
	offset := q.Params.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		items []T
		total int64
	)
	run := func(tx *gorm.DB) error {
		page := q.Base(tx).Select(SelectClause(q.Columns))
		for _, order := range q.orderClauses() {
			page = page.Order(order)
		}
		if err := page.Limit(limit).Offset(offset).Scan(&items).Error; err != nil {
			return err
		}
		return q.count(tx, &total)
	}

	started := time.Now()
	var err error
	if q.Consistent {
		err = db.WithSnapshot(ctx, conn, run)
	} else {
		err = run(conn.WithContext(ctx))
	}
	q.Metrics.ObserveQuery(q.Entity, time.Since(started))
	if err != nil {
		q.Metrics.IncQueryFailure(q.Entity)
		return Page[T]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list "+q.Entity)
	}

	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:     items,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
		PageCount: pagination.PageCount(total, limit),
	}, nil
}

func (q Query) count(tx *gorm.DB, total *int64) error {
	if !q.Grouped {
		return q.Base(tx).Count(total).Error
	}
	grouped := q.Base(tx).Select("1")
	return tx.Table("(?) AS grouped", grouped).Count(total).Error
}

// SelectClause renders cols as a projection list.
func SelectClause(cols []Column) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, c.selectClause())
	}
	return strings.Join(parts, ", ")
}

func (q Query) orderClauses() []string {
	sort := q.Params.Sort
	var orders []string
	for _, c := range q.Columns {
		if c.Field != "" && c.Field == sort.Field {
			orders = append(orders, c.Expr+" "+sort.Direction.SQL())
			break
		}
	}
	for _, expr := range q.Tiebreak {
		orders = append(orders, expr+" "+sort.Direction.SQL())
	}
	return orders
}
