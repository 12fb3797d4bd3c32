package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Tags is a list of post tags, stored as a JSON array.
type Tags []string

// Scan implements the sql.Scanner interface.
func (t *Tags) Scan(value interface{}) error {
	if value == nil {
		*t = Tags{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T", v)
	}
	if err := json.Unmarshal(raw, t); err != nil {
		return fmt.Errorf("decoding tags: %w", err)
	}
	return nil
}

// Value implements the driver.Valuer interface.
func (t Tags) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
