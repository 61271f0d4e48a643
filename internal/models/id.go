package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EntityID is the normalized identifier used across the API.
// Legacy data sources emit identifiers as either JSON strings or JSON
// numbers for the same field, so the coercion happens once here at the
// boundary and everything downstream compares plain strings.
type EntityID string

// ParseEntityID normalizes an arbitrary identifier value into an EntityID.
func ParseEntityID(v interface{}) (EntityID, error) {
	switch id := v.(type) {
	case string:
		return EntityID(strings.TrimSpace(id)), nil
	case float64:
		// JSON numbers decode as float64; identifiers are always integral.
		return EntityID(strconv.FormatInt(int64(id), 10)), nil
	case int:
		return EntityID(strconv.Itoa(id)), nil
	case int64:
		return EntityID(strconv.FormatInt(id, 10)), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported identifier type %T", v)
	}
}

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal identifier: %w", err)
	}

	parsed, err := ParseEntityID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// String returns the normalized string form.
func (id EntityID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id EntityID) IsZero() bool {
	return id == ""
}
