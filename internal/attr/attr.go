// Package attr implements the per-project attribute set that driver hooks
// read and write through the host. Values are either booleans or strings; a
// key that was never set is absent, which is distinct from false or "".
package attr

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Well-known attribute keys.
const (
	C4Cpp           = "c4cpp"
	Scope           = "scope"
	Model           = "model"
	UseGeneratedAPI = "use-generated-api"
)

// ErrUnsupportedType is returned when a value is neither a bool nor a string.
var ErrUnsupportedType = errors.New("attribute value must be a bool or a string")

// Set stores attribute values keyed by name.
type Set struct {
	values map[string]cty.Value
}

// New creates an empty attribute set.
func New() *Set {
	return &Set{values: make(map[string]cty.Value)}
}

// Has reports whether key has been assigned a value.
func (s *Set) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Value returns the raw value stored under key.
func (s *Set) Value(key string) (cty.Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Bool returns the boolean value of key. Absent keys and values that cannot
// be converted to a bool read as false.
func (s *Set) Bool(key string) bool {
	v, ok := s.values[key]
	if !ok {
		return false
	}
	b, err := convert.Convert(v, cty.Bool)
	if err != nil || b.IsNull() {
		return false
	}
	return b.True()
}

// String returns the string value of key, or "" when absent.
func (s *Set) String(key string) string {
	v, ok := s.values[key]
	if !ok {
		return ""
	}
	str, err := convert.Convert(v, cty.String)
	if err != nil || str.IsNull() {
		return ""
	}
	return str.AsString()
}

// SetBool assigns a boolean value.
func (s *Set) SetBool(key string, value bool) {
	s.values[key] = cty.BoolVal(value)
}

// SetString assigns a string value.
func (s *Set) SetString(key string, value string) {
	s.values[key] = cty.StringVal(value)
}

// Set assigns an arbitrary cty value. Numbers are stored as their string
// form; anything other than a known bool, string or number is rejected.
func (s *Set) Set(key string, value cty.Value) error {
	if value.IsNull() || !value.IsKnown() {
		return fmt.Errorf("attribute %q: %w", key, ErrUnsupportedType)
	}
	switch value.Type() {
	case cty.Bool, cty.String:
		s.values[key] = value
	case cty.Number:
		str, err := convert.Convert(value, cty.String)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		s.values[key] = str
	default:
		return fmt.Errorf("attribute %q (%s): %w", key, value.Type().FriendlyName(), ErrUnsupportedType)
	}
	return nil
}

// Keys returns the assigned keys in sorted order.
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
