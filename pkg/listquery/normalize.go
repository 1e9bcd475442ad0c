package listquery

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

const listSeparator = "."

// Normalize converts raw query values into Params. It never fails: anything
// unparseable falls back to the schema default or is treated as absent.
func Normalize(values url.Values, schema Schema) Params {
	limit := pagination.NormalizeLimit(parseInt(values.Get(KeyPerPage)), schema.DefaultLimit)
	offset := pagination.OffsetFor(parseInt(values.Get(KeyPage)), limit)

	return Params{
		Limit:   limit,
		Offset:  offset,
		Sort:    normalizeSort(values.Get(KeySort), schema),
		Filters: normalizeFilters(values),
	}
}

func normalizeSort(raw string, schema Schema) Sort {
	fallback := schema.DefaultSort
	if fallback.Direction == "" {
		fallback.Direction = enums.SortDesc
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	field, direction, _ := strings.Cut(raw, listSeparator)
	if !schema.allowsSort(field) {
		return fallback
	}
	return Sort{Field: field, Direction: enums.ParseSortDirection(direction)}
}

func normalizeFilters(values url.Values) Filters {
	f := Filters{
		Name:          strings.TrimSpace(values.Get(KeyName)),
		Email:         strings.TrimSpace(values.Get(KeyEmail)),
		Customer:      strings.TrimSpace(values.Get(KeyCustomer)),
		StoreIDs:      splitIDs(values.Get(KeyStoreIDs)),
		Categories:    splitList(values.Get(KeyCategories)),
		Subcategories: splitList(values.Get(KeySubcategories)),
		Statuses:      splitList(values.Get(KeyStatuses)),
		From:          parseTime(values.Get(KeyFrom), false),
		To:            parseTime(values.Get(KeyTo), true),
	}
	f.PriceMin, f.PriceMax = parsePriceRange(values.Get(KeyPriceRange))
	return f
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, listSeparator) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitIDs(raw string) []int64 {
	var out []int64
	for _, part := range splitList(raw) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		out = append(out, id)
	}
	return out
}

// parsePriceRange reads "min-max"; either side may be empty.
func parsePriceRange(raw string) (*decimal.Decimal, *decimal.Decimal) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	minRaw, maxRaw, _ := strings.Cut(raw, "-")
	lo := parseDecimal(minRaw)
	hi := parseDecimal(maxRaw)
	if lo != nil && hi != nil && lo.GreaterThan(*hi) {
		lo, hi = hi, lo
	}
	return lo, hi
}

func parseDecimal(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

// parseTime accepts RFC3339, YYYY-MM-DD or unix milliseconds. A bare date used as an
// upper bound covers the whole day.
func parseTime(raw string, endOfDay bool) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil && ms > 0 {
		t := time.UnixMilli(ms).UTC()
		return &t
	}
	return nil
}
