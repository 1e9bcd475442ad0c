package listquery

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type widget struct {
	ID     int64 `gorm:"primaryKey"`
	Name   string
	Bucket string
	Score  int
}

type widgetRow struct {
	ID    int64
	Name  string
	Score int
}

type groupRow struct {
	Bucket string
	Total  int
	Items  int64
}

var widgetColumns = []Column{
	{Expr: "w.id", As: "id"},
	{Field: "name", Expr: "w.name", As: "name"},
	{Field: "score", Expr: "w.score", As: "score"},
}

var groupColumns = []Column{
	{Field: "bucket", Expr: "w.bucket", As: "bucket"},
	{Field: "total", Expr: "SUM(w.score)", As: "total"},
	{Field: "items", Expr: "COUNT(w.id)", As: "items"},
}

func openWidgets(t *testing.T, n int) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(&widget{}))

	for i := 1; i <= n; i++ {
		require.NoError(t, conn.Create(&widget{
			Name:  fmt.Sprintf("w-%02d", i),
			Bucket: fmt.Sprintf("g-%d", i%4),
			Score: (i * 7) % 5,
		}).Error)
	}
	return conn
}

func widgetQuery(params Params, minScore int) Query {
	return Query{
		Entity: "widgets",
		Params: params,
		Base: func(tx *gorm.DB) *gorm.DB {
			return tx.Table("widgets w").Where("w.score >= ?", minScore)
		},
		Columns:  widgetColumns,
		Tiebreak: []string{"w.id"},
	}
}

func TestRunPagesConcatenateWithoutGapsOrDuplicates(t *testing.T) {
	conn := openWidgets(t, 23)
	ctx := context.Background()
	sort := Sort{Field: "score", Direction: enums.SortAsc}

	full, err := Run[widgetRow](ctx, conn, widgetQuery(Params{Limit: 100, Sort: sort}, 1))
	require.NoError(t, err)
	require.Equal(t, int64(len(full.Items)), full.Total)

	var concatenated []widgetRow
	for offset := 0; offset < int(full.Total); offset += 5 {
		page, err := Run[widgetRow](ctx, conn, widgetQuery(Params{Limit: 5, Offset: offset, Sort: sort}, 1))
		require.NoError(t, err)
		require.Equal(t, full.Total, page.Total)
		concatenated = append(concatenated, page.Items...)
	}
	assert.Equal(t, full.Items, concatenated)

	for i := 1; i < len(full.Items); i++ {
		assert.LessOrEqual(t, full.Items[i-1].Score, full.Items[i].Score)
	}
}

func TestRunGroupedCountsGroups(t *testing.T) {
	conn := openWidgets(t, 12)
	ctx := context.Background()

	q := Query{
		Entity: "groups",
		Params: Params{Limit: 2, Sort: Sort{Field: "total", Direction: enums.SortDesc}},
		Base: func(tx *gorm.DB) *gorm.DB {
			return tx.Table("widgets w").Group("w.bucket")
		},
		Columns:    groupColumns,
		Tiebreak:   []string{"w.bucket"},
		Grouped:    true,
		Consistent: true,
	}

	page, err := Run[groupRow](ctx, conn, q)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 2, page.PageCount)
	require.Len(t, page.Items, 2)
	assert.GreaterOrEqual(t, page.Items[0].Total, page.Items[1].Total)

	q.Params.Offset = 2
	rest, err := Run[groupRow](ctx, conn, q)
	require.NoError(t, err)
	require.Len(t, rest.Items, 2)
	assert.GreaterOrEqual(t, page.Items[1].Total, rest.Items[0].Total)
	assert.GreaterOrEqual(t, rest.Items[0].Total, rest.Items[1].Total)
}

func TestRunEmptyResultIsEmptyList(t *testing.T) {
	conn := openWidgets(t, 3)

	page, err := Run[widgetRow](context.Background(), conn, widgetQuery(Params{Limit: 5}, 100))
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.PageCount)
}

func TestRunClampsNonPositiveLimit(t *testing.T) {
	conn := openWidgets(t, 30)

	page, err := Run[widgetRow](context.Background(), conn, widgetQuery(Params{Limit: 0}, 0))
	require.NoError(t, err)
	assert.Positive(t, page.Limit)
	assert.Len(t, page.Items, page.Limit)
}

func TestRunWrapsFailuresAsDependencyErrors(t *testing.T) {
	conn := openWidgets(t, 1)
	reg := prometheus.NewRegistry()

	q := Query{
		Entity:  "missing",
		Params:  Params{Limit: 5},
		Base:    func(tx *gorm.DB) *gorm.DB { return tx.Table("no_such_table") },
		Columns: []Column{{Expr: "id"}},
		Metrics: metrics.NewCatalogMetrics(reg),
	}
	_, err := Run[widgetRow](context.Background(), conn, q)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestRunRequiresBase(t *testing.T) {
	_, err := Run[widgetRow](context.Background(), openWidgets(t, 0), Query{Entity: "x"})
	require.Error(t, err)
}

func TestSortFields(t *testing.T) {
	assert.Equal(t, []string{"name", "score"}, SortFields(widgetColumns))
}
