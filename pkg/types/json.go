package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores a list of strings inside a JSON column.
type StringList []string

// Value serializes the list to JSON.
func (s StringList) Value() (driver.Value, error) {
	return jsonValue(s, "[]")
}

// Scan decodes a JSON column into the list.
func (s *StringList) Scan(value interface{}) error {
	*s = nil
	return scanJSON(value, s)
}

func jsonValue(v any, empty string) (driver.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return empty, nil
	}
	return string(raw), nil
}

func scanJSON(value interface{}, dest any) error {
	if value == nil {
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
