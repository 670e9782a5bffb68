package literal

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type age int

type mood string

type shouter struct{ word string }

func (s shouter) String() string { return s.word + "!" }

type point struct{ X, Y int }

func TestRender(t *testing.T) {
	str := "pointed"
	num := int64(7)
	when := time.Date(1999, 12, 31, 23, 59, 58, 0, time.FixedZone("X", 3600))

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "O'Brien", want: `'O\'Brien'`},
		{name: "bool", value: true, want: "true"},
		{name: "int", value: 42, want: "42"},
		{name: "int8", value: int8(-8), want: "-8"},
		{name: "int16", value: int16(16), want: "16"},
		{name: "int32", value: int32(-32), want: "-32"},
		{name: "int64", value: int64(1) << 40, want: "1099511627776"},
		{name: "uint8", value: uint8(255), want: "255"},
		{name: "uint32", value: uint32(4294967295), want: "4294967295"},
		{name: "uint small", value: uint(12), want: "12"},
		{name: "uint64 beyond int64", value: uint64(math.MaxUint64), want: "18446744073709551615"},
		{name: "float64", value: 0.25, want: "0.25"},
		{name: "float32", value: float32(0.1), want: "0.1"},
		{name: "apd pointer", value: apd.New(12345, -2), want: "123.45"},
		{name: "apd value", value: *apd.New(5, 3), want: "5000"},
		{name: "time", value: when, want: "'1999-12-31T23:59:58'"},
		{name: "literal passthrough", value: String("x"), want: "'x'"},
		{name: "named int", value: age(30), want: "30"},
		{name: "named string", value: mood("it's fine"), want: `'it\'s fine'`},
		{name: "stringer", value: shouter{word: "hey"}, want: "'hey!'"},
		{name: "pointer", value: &str, want: "'pointed'"},
		{name: "pointer to int", value: &num, want: "7"},
		{name: "struct fallback", value: point{X: 1, Y: 2}, want: "'{1 2}'"},
		{name: "slice fallback", value: []int{1, 2}, want: "'[1 2]'"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Render(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	values := []any{"a'b", 1.0 / 3.0, float32(2.5), int64(-9), time.Unix(0, 0).UTC(), point{1, 2}}
	for _, v := range values {
		first, err := Render(v)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := Render(v)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestRenderFallbackIsOneShot(t *testing.T) {
	v, err := Of(point{X: 3, Y: 4})
	require.NoError(t, err)

	fb, ok := v.(Fallback)
	require.True(t, ok, "expected Fallback, got %T", v)
	assert.Equal(t, "{3 4}", fb.Text)
	assert.Equal(t, "literal.point", fb.TypeName)
}

func TestRenderRejectsNull(t *testing.T) {
	var nilString *string
	var nilMap map[string]int
	var nilStringer fmt.Stringer
	var nilDecimal *apd.Decimal

	for _, v := range []any{nil, nilString, nilMap, nilStringer, nilDecimal} {
		_, err := Render(v)
		require.Error(t, err, "value %#v", v)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestRenderRejectsNonFinite(t *testing.T) {
	for _, v := range []any{math.NaN(), math.Inf(1), float32(math.Inf(-1)), Float(math.NaN())} {
		_, err := Render(v)
		require.Error(t, err, "value %v", v)
		assert.True(t, IsInvalidArgument(err))
	}
}

func TestIsNull(t *testing.T) {
	var p *int
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull(p))
	assert.True(t, IsNull([]string(nil)))
	assert.False(t, IsNull(0))
	assert.False(t, IsNull(""))
	assert.False(t, IsNull([]string{}))
}
