// Package literal renders typed scalar values as literal tokens of the
// traversal language.
//
// Every rendered literal is a self-contained fragment that can be embedded
// directly into program text; no further escaping is ever applied
// downstream.
//
// Value is a sealed interface with one variant per supported scalar kind:
//
//	String     'text' with every ' written as \'
//	Bool       true / false
//	Int        base-10 digits
//	Float      shortest round-trip decimal form
//	Float32    shortest round-trip decimal form at 32-bit precision
//	Decimal    plain decimal digits of an apd.Decimal
//	Timestamp  '2006-01-02T15:04:05', quoted like String
//	Fallback   textual form of any other Go value, quoted like String
//
// Of classifies an arbitrary Go value into one of these variants. Fallback is
// the explicit catch-all: a value of an unrecognized type is converted to text
// exactly once (via fmt.Stringer or fmt.Sprint) and rendered as a String. The
// conversion is not re-entered, so it cannot recurse.
//
// Properties is the ordered key/value collection used for vertex and edge
// properties. RenderProperties skips null values entirely.
//
// Null input (nil, or a nil pointer, map, slice, ...) is rejected with an
// error matching ErrInvalidArgument, as are non-finite floats and decimals.
package literal
