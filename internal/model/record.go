package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Field names the editor reads from every record.
const (
	DefaultIDField      = "id"
	DefaultStatusField  = "status"
	DefaultDeletedField = "deleted"
)

// Record is the data of a single grid row, keyed by column data name.
//
// Values are whatever the data source produced (strings, numbers, bools, nested
// maps and slices); a Record is compared by its canonical serialization, see
// Equal.
type Record map[string]any

// Clone returns a deep copy of the record.
// Nested maps and slices are copied, scalars are shared.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	result := make(Record, len(r))
	for k, v := range r {
		result[k] = cloneValue(v)
	}
	return result
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Record:
		return val.Clone()
	case map[string]any:
		return map[string]any(Record(val).Clone())
	case []any:
		result := make([]any, len(val))
		for i := range val {
			result[i] = cloneValue(val[i])
		}
		return result
	case []string:
		result := make([]string, len(val))
		copy(result, val)
		return result
	default:
		return v
	}
}

// Canonical returns the canonical serialized form of the record.
// Object keys are sorted, sequence order is preserved.
func (r Record) Canonical() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]any(r))
}

// Equal reports whether both records have byte-identical canonical forms.
// Records that cannot be serialized are never equal to anything.
func Equal(a, b Record) bool {
	ca, err := a.Canonical()
	if err != nil {
		return false
	}
	cb, err := b.Canonical()
	if err != nil {
		return false
	}
	return bytes.Equal(ca, cb)
}

// GetAsString returns the value as a string, or defaultValue if absent or nil.
func (r Record) GetAsString(col string, defaultValue string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return defaultValue
	}

	switch val := v.(type) {
	case string:
		return val
	case int, int64, int32:
		return fmt.Sprintf("%d", val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case []string:
		return strings.Join(val, ",")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Has reports whether the record carries a non-nil, non-empty value for col.
func (r Record) Has(col string) bool {
	v, ok := r[col]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return s != ""
	}
	return true
}

// ID returns the record's identifier under the given field, if it has one.
func (r Record) ID(idField string) (string, bool) {
	if !r.Has(idField) {
		return "", false
	}
	return r.GetAsString(idField, ""), true
}
