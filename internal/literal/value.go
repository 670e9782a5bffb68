package literal

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// SortableLayout is the timestamp layout rendered for Timestamp values.
const SortableLayout = "2006-01-02T15:04:05"

// Value is a sealed interface over the supported scalar kinds.
// Only the types in this package implement it.
type Value interface {
	// Literal returns the rendered token. It never fails: values that have
	// no literal form are rejected when they are classified.
	Literal() string

	literal() // Sealed
}

// String is a text literal.
type String string

func (String) literal() {}

// Literal implements Value.
func (s String) Literal() string { return Quote(string(s)) }

// Bool is a boolean literal.
type Bool bool

func (Bool) literal() {}

// Literal implements Value.
func (b Bool) Literal() string {
	if b {
		return "true"
	}
	return "false"
}

// Int is an integral literal. All signed integer kinds and unsigned values
// that fit in int64 are widened to Int.
type Int int64

func (Int) literal() {}

// Literal implements Value.
func (n Int) Literal() string { return strconv.FormatInt(int64(n), 10) }

// Float is a 64-bit floating-point literal.
type Float float64

func (Float) literal() {}

// Literal implements Value.
func (f Float) Literal() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// Float32 is a 32-bit floating-point literal. It is kept apart from Float so
// that the shortest form is computed at the value's own precision (0.1, not
// 0.10000000149011612).
type Float32 float32

func (Float32) literal() {}

// Literal implements Value.
func (f Float32) Literal() string { return strconv.FormatFloat(float64(f), 'g', -1, 32) }

// Decimal is a high-precision decimal literal.
// Construct it with NewDecimal or ParseDecimal; the zero value renders 0.
type Decimal struct {
	d apd.Decimal
}

func (Decimal) literal() {}

// NewDecimal copies d into a Decimal. Non-finite decimals are rejected.
func NewDecimal(d *apd.Decimal) (Decimal, error) {
	if d == nil {
		return Decimal{}, NewArgumentError("decimal", "", "value is null")
	}
	if d.Form != apd.Finite {
		return Decimal{}, NewArgumentError("decimal", "", "non-finite decimal %s has no literal form", d.String())
	}
	var out Decimal
	out.d.Set(d)
	return out, nil
}

// ParseDecimal parses s as an exact decimal.
func ParseDecimal(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, NewArgumentError("decimal", "", "parse %q: %v", s, err)
	}
	return NewDecimal(d)
}

// Literal implements Value.
func (d Decimal) Literal() string { return d.d.Text('f') }

// Timestamp is a point in time rendered as a quoted sortable timestamp.
// The wall clock of the value's own location is rendered; no zone
// conversion or offset is applied.
type Timestamp time.Time

func (Timestamp) literal() {}

// Literal implements Value.
func (t Timestamp) Literal() string { return Quote(time.Time(t).Format(SortableLayout)) }

// Fallback carries the textual form of a value whose type is not one of the
// supported scalar kinds. It renders exactly like String.
type Fallback struct {
	// Text is the value's textual conversion.
	Text string

	// TypeName is the Go type of the original value, for diagnostics.
	TypeName string
}

func (Fallback) literal() {}

// Literal implements Value.
func (f Fallback) Literal() string { return Quote(f.Text) }

// Escape writes every single quote in s as a backslash-prefixed quote.
// No other character is altered.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// Unescape reverses Escape.
func Unescape(s string) string {
	return strings.ReplaceAll(s, `\'`, "'")
}

// Quote wraps the escaped form of s in single quotes.
func Quote(s string) string {
	return "'" + Escape(s) + "'"
}

// checkFinite rejects NaN and infinities, which have no literal form.
func checkFinite(v Value) error {
	switch val := v.(type) {
	case Float:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return NewArgumentError("literal", "", "non-finite float %v has no literal form", float64(val))
		}
	case Float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return NewArgumentError("literal", "", "non-finite float %v has no literal form", float32(val))
		}
	case Decimal:
		if val.d.Form != apd.Finite {
			return NewArgumentError("literal", "", "non-finite decimal has no literal form")
		}
	}
	return nil
}
