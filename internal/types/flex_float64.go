package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexFloat64 is a float64 that can be unmarshaled from either a JSON number or a JSON string.
// Only finite values are accepted.
type FlexFloat64 float64

// UnmarshalJSON implements the json.Unmarshaler interface.
// Infinities and NaN are rejected with a Validation error.
func (f *FlexFloat64) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	// Try unmarshaling as a number first
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		return f.set(n, string(data))
	}

	// Try unmarshaling as a string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("FlexFloat64: invalid number string %q: %w", s, err)
		}
		return f.set(val, s)
	}

	return fmt.Errorf("FlexFloat64: unexpected type, expected number or string")
}

func (f *FlexFloat64) set(val float64, raw string) error {
	if !IsFinite(val) {
		return Validation("%q is not a finite number", raw)
	}
	*f = FlexFloat64(val)
	return nil
}

// IsFinite reports whether val is neither infinite nor NaN
func IsFinite(val float64) bool {
	return !math.IsInf(val, 0) && !math.IsNaN(val)
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexFloat64) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

// Float64 converts FlexFloat64 back to float64.
func (f FlexFloat64) Float64() float64 {
	return float64(f)
}

// Ptr converts an optional FlexFloat64 to an optional float64.
func (f *FlexFloat64) Ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}
