package dbtypes

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Time scans timestamps produced by aggregate expressions (MAX(created_at) and friends).
// Postgres returns time.Time; SQLite returns the stored text because the expression
// carries no declared column type.
type Time struct {
	time.Time
	Valid bool
}

var textLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC3339Nano,
}

// Scan implements sql.Scanner.
func (t *Time) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Time{}
		return nil
	case time.Time:
		*t = Time{Time: v, Valid: true}
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("dbtypes.Time: unsupported scan type %T", src)
	}
}

func (t *Time) parse(raw string) error {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "Z")
	for _, layout := range textLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			*t = Time{Time: parsed.UTC(), Valid: true}
			return nil
		}
	}
	return fmt.Errorf("dbtypes.Time: cannot parse %q", raw)
}

// Value implements driver.Valuer.
func (t Time) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time, nil
}

// Ptr returns nil for NULL timestamps.
func (t Time) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
