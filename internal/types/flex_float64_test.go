package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat64Accepts(t *testing.T) {
	cases := map[string]float64{
		`12.5`:     12.5,
		`"12.5"`:   12.5,
		`" 7 "`:    7,
		`0`:        0,
		`"1e3"`:    1000,
		`-3`:       -3,
		`"-0.25"`:  -0.25,
		`1.5e300`:  1.5e300,
		`"2e-300"`: 2e-300,
	}

	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			var f FlexFloat64
			require.NoError(t, json.Unmarshal([]byte(raw), &f))
			assert.Equal(t, want, f.Float64())
		})
	}
}

func TestFlexFloat64RejectsNonFinite(t *testing.T) {
	for _, raw := range []string{`"Infinity"`, `"+Inf"`, `"-Inf"`, `"inf"`, `"NaN"`, `"nan"`} {
		t.Run(raw, func(t *testing.T) {
			var f FlexFloat64
			err := json.Unmarshal([]byte(raw), &f)
			assert.True(t, IsKind(err, KindValidation), "got %v", err)
		})
	}
}

func TestFlexFloat64RejectsOutOfRange(t *testing.T) {
	for _, raw := range []string{`1e400`, `"1e400"`, `"-1e400"`, `"abc"`, `true`, `[1]`} {
		t.Run(raw, func(t *testing.T) {
			var f FlexFloat64
			assert.Error(t, json.Unmarshal([]byte(raw), &f))
		})
	}
}

func TestFlexFloat64InStruct(t *testing.T) {
	var body struct {
		Weight *FlexFloat64 `json:"weight"`
	}
	err := json.Unmarshal([]byte(`{"weight":"Infinity"}`), &body)
	assert.True(t, IsKind(err, KindValidation), "got %v", err)

	require.NoError(t, json.Unmarshal([]byte(`{"weight":"70.5"}`), &body))
	assert.Equal(t, 70.5, *body.Weight.Ptr())
}
