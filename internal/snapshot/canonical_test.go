package snapshot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{-2.5, "-2.5"},
		{100, "100"},
		{0.1, "0.1"},
		{123.456, "123.456"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e300, "1.5e+300"},
		{1704067200000, "1704067200000"},
	}

	for _, tt := range tests {
		got, err := FormatNumber(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}

	_, err := FormatNumber(math.NaN())
	assert.Error(t, err)
	_, err = FormatNumber(math.Inf(-1))
	assert.Error(t, err)
}

func TestMarshalCanonical_Basic(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"null", nil, "null"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 0.25, "0.25"},
		{"floats", []float64{1, 2.5, 1e-7}, "[1,2.5,1e-7]"},
		{"empty floats", []float64{}, "[]"},
		{"strings", []string{"a", "b"}, `["a","b"]`},
		{"no html escape", "<a&b>", `"<a&b>"`},
		{"mixed", []any{1, "x", false}, `[1,"x",false]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalCanonical_SortedKeys(t *testing.T) {
	got, err := MarshalCanonical(map[string]any{
		"zebra": 1,
		"alpha": map[string]any{"b": 1, "a": 2},
		"beta":  []float64{1.5},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":{"a":2,"b":1},"beta":[1.5],"zebra":1}`, string(got))
}

func TestMarshalCanonical_UTF16KeyOrder(t *testing.T) {
	// U+1F600 encodes to a surrogate pair (0xD83D ...) which sorts before
	// U+FB01 in UTF-16, although it sorts after it in UTF-8.
	got, err := MarshalCanonical(map[string]any{
		"\uFB01":     1,
		"\U0001F600": 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":2,\"\uFB01\":1}", string(got))
}

func TestMarshalCanonical_NFC(t *testing.T) {
	got, err := MarshalCanonical("e\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(got))
}

func TestMarshalCanonical_LineSeparators(t *testing.T) {
	got, err := MarshalCanonical("a\u2028b\u2029c")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(got))

	// an escaped backslash followed by the text u2028 stays as it is
	got, err = MarshalCanonical(`\u2028`)
	require.NoError(t, err)
	assert.Equal(t, `"\\u2028"`, string(got))
}

func TestMarshalCanonical_Errors(t *testing.T) {
	_, err := MarshalCanonical(math.NaN())
	assert.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"ticks": []float64{1, math.Inf(1)}})
	assert.ErrorContains(t, err, "ticks")

	_, err = MarshalCanonical(struct{}{})
	assert.ErrorContains(t, err, "unsupported type")
}
