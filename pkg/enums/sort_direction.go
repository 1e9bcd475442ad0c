package enums

import "strings"

// SortDirection is the direction half of a `field.direction` sort parameter.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection never fails: anything other than asc resolves to desc.
func ParseSortDirection(value string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(value), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// SQL returns the keyword used in ORDER BY clauses.
func (d SortDirection) SQL() string {
	if d == SortAsc {
		return "ASC"
	}
	return "DESC"
}
