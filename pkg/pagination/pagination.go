package pagination

import "math"

const (
	// DefaultLimit is the standard page size when a schema does not provide one.
	DefaultLimit = 10
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// NormalizeLimit enforces fallback and the maximum limit. A fallback ≤0 means DefaultLimit.
func NormalizeLimit(limit, fallback int) int {
	if fallback <= 0 {
		fallback = DefaultLimit
	}
	if fallback > MaxLimit {
		fallback = MaxLimit
	}
	if limit <= 0 {
		return fallback
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// OffsetFor converts a 1-based page into a row offset. Pages below 1 map to offset 0
// and pages past the addressable range saturate at the last whole page.
func OffsetFor(page, limit int) int {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt / limit * limit
	}
	return (page - 1) * limit
}

// PageCount returns the number of pages needed to hold total rows.
func PageCount(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
