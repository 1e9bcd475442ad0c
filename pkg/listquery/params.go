package listquery

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Query string keys understood by Normalize.
const (
	KeyPage          = "page"
	KeyPerPage       = "per_page"
	KeySort          = "sort"
	KeyName          = "name"
	KeyEmail         = "email"
	KeyCustomer      = "customer"
	KeyPriceRange    = "price_range"
	KeyFrom          = "from"
	KeyTo            = "to"
	KeyStoreIDs      = "store_ids"
	KeyCategories    = "categories"
	KeySubcategories = "subcategories"
	KeyStatuses      = "statuses"
)

// Sort is a resolved `field.direction` pair. Field is always one of the schema's sort fields.
type Sort struct {
	Field     string
	Direction enums.SortDirection
}

// Filters holds every filter a list view may apply. Zero values mean "no filter".
type Filters struct {
	Name          string
	Email         string
	Customer      string
	StoreIDs      []int64
	Categories    []string
	Subcategories []string
	Statuses      []string
	PriceMin      *decimal.Decimal
	PriceMax      *decimal.Decimal
	From          *time.Time
	To            *time.Time
}

// Params is the typed output of Normalize and the only input list builders accept.
type Params struct {
	Limit   int
	Offset  int
	Sort    Sort
	Filters Filters
}

// Schema describes what a list view accepts.
type Schema struct {
	DefaultLimit int
	DefaultSort  Sort
	SortFields   []string
}

func (s Schema) allowsSort(field string) bool {
	for _, f := range s.SortFields {
		if f == field {
			return true
		}
	}
	return false
}

// WithDefaultLimit returns a copy of s using limit when it is positive.
func (s Schema) WithDefaultLimit(limit int) Schema {
	if limit > 0 {
		s.DefaultLimit = limit
	}
	return s
}

// Page is one page of a list query plus the total over the same predicate.
type Page[T any] struct {
	Items     []T   `json:"items"`
	Total     int64 `json:"total"`
	Limit     int   `json:"limit"`
	Offset    int   `json:"offset"`
	PageCount int   `json:"pageCount"`
}

// MapPage converts the items of p with fn, keeping the paging metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return Page[U]{
		Items:     items,
		Total:     p.Total,
		Limit:     p.Limit,
		Offset:    p.Offset,
		PageCount: p.PageCount,
	}
}
