package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_Compact(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"null", Null(), "null"},
		{"absent serializes as null", nil, "null"},
		{"true", Bool(true), "true"},
		{"string", String("hi"), `"hi"`},
		{"empty array", Array(), "[]"},
		{"empty object", Object(), "{}"},
		{"array", Array(Number(1), String("x")), `[1,"x"]`},
		{
			"object keeps insertion order",
			Object(Member{Key: "z", Value: Number(1)}, Member{Key: "a", Value: Number(2)}),
			`{"z":1,"a":2}`,
		},
		{"escaping", String("a\"b\\c\nd"), `"a\"b\\c\nd"`},
		{"control char", String("x\x01y"), `"x\u0001y"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize(tt.v))
		})
	}
}

func TestSerialize_WholeNumbersStayWhole(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-17, "-17"},
		{31.0, "31"},
		{3.14, "3.14"},
		{-0.5, "-0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize(Number(tt.in)))
		})
	}
}

func TestSerialize_Pretty(t *testing.T) {
	v := Object(
		Member{Key: "a", Value: Number(1)},
		Member{Key: "list", Value: Array(Number(1), Number(2))},
	)

	want := `{
  "a": 1,
  "list": [
    1,
    2
  ]
}`
	assert.Equal(t, want, SerializePretty(v))
}

func TestSerialize_SortKeys(t *testing.T) {
	v := Object(
		Member{Key: "z", Value: Number(1)},
		Member{Key: "a", Value: Number(2)},
	)
	opts := DefaultSerializeOptions()
	opts.SortKeys = true

	assert.Equal(t, `{"a":2,"z":1}`, SerializeWithOptions(v, opts))

	// Sorting is output-only; the tree keeps insertion order.
	members, err := v.AsObject()
	require.NoError(t, err)
	assert.Equal(t, "z", members[0].Key)
}
