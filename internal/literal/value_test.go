package literal

import (
	"math"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	var _ Value = String("x")
	var _ Value = Bool(true)
	var _ Value = Int(1)
	var _ Value = Float(1.5)
	var _ Value = Float32(1.5)
	var _ Value = Decimal{}
	var _ Value = Timestamp(time.Time{})
	var _ Value = Fallback{Text: "x"}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "person", want: "'person'"},
		{name: "empty", in: "", want: "''"},
		{name: "single quote", in: "O'Brien", want: `'O\'Brien'`},
		{name: "many quotes", in: "'''", want: `'\'\'\''`},
		{name: "double quote untouched", in: `say "hi"`, want: `'say "hi"'`},
		{name: "backslash untouched", in: `C:\dir`, want: `'C:\dir'`},
		{name: "unicode untouched", in: "naïve ☃", want: "'naïve ☃'"},
		{name: "newline untouched", in: "a\nb", want: "'a\nb'"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Quote(tc.in))
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"'",
		"it's",
		`\`,
		`\'`,
		`a\\'b`,
		`'\''`,
		"trailing\\",
		"mixed 'quotes' and \\'escapes\\'",
	}

	for _, in := range inputs {
		escaped := Escape(in)
		assert.Equal(t, in, Unescape(escaped), "round trip of %q via %q", in, escaped)

		quoted := Quote(in)
		require.True(t, len(quoted) >= 2)
		assert.Equal(t, in, Unescape(quoted[1:len(quoted)-1]))
	}
}

func TestValueLiterals(t *testing.T) {
	dec, err := ParseDecimal("12345678901234567890.123456789")
	require.NoError(t, err)
	trailing, err := ParseDecimal("1.50")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "string", value: String("value"), want: "'value'"},
		{name: "true", value: Bool(true), want: "true"},
		{name: "false", value: Bool(false), want: "false"},
		{name: "int", value: Int(30), want: "30"},
		{name: "negative int", value: Int(-1234567), want: "-1234567"},
		{name: "max int64", value: Int(math.MaxInt64), want: "9223372036854775807"},
		{name: "float fraction", value: Float(0.5), want: "0.5"},
		{name: "float integral", value: Float(3), want: "3"},
		{name: "float large", value: Float(1e21), want: "1e+21"},
		{name: "float32 shortest", value: Float32(0.1), want: "0.1"},
		{name: "decimal exact", value: dec, want: "12345678901234567890.123456789"},
		{name: "decimal keeps scale", value: trailing, want: "1.50"},
		{name: "zero decimal", value: Decimal{}, want: "0"},
		{
			name:  "timestamp",
			value: Timestamp(time.Date(2024, 3, 5, 7, 8, 9, 999, time.UTC)),
			want:  "'2024-03-05T07:08:09'",
		},
		{name: "fallback", value: Fallback{Text: "it's"}, want: `'it\'s'`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.value.Literal())
		})
	}
}

func TestParseDecimalRejectsGarbage(t *testing.T) {
	_, err := ParseDecimal("twelve")
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))

	_, err = ParseDecimal("NaN")
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestNewDecimalRejectsNonFinite(t *testing.T) {
	_, err := NewDecimal(nil)
	assert.True(t, IsInvalidArgument(err))

	inf := new(apd.Decimal)
	inf.Form = apd.Infinite
	_, err = NewDecimal(inf)
	assert.True(t, IsInvalidArgument(err))
}

func TestArgumentErrorMessage(t *testing.T) {
	err := NewArgumentError("timeLimit", "milliseconds", "must be greater than zero, got %d", 0)
	assert.Equal(t, "timeLimit: milliseconds: must be greater than zero, got 0", err.Error())
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = NewArgumentError("literal", "", "value is null")
	assert.Equal(t, "literal: value is null", err.Error())
}
