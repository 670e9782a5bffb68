package literal

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Of classifies a Go value into a Value.
//
// Classification order:
//  1. nil and nil pointers/maps/slices are rejected as null
//  2. Value implementations pass through (after a finiteness check)
//  3. built-in scalar types, apd decimals and time.Time map to their variant
//  4. fmt.Stringer implementations become Fallback(String())
//  5. named types over a basic kind are classified by that kind
//  6. non-nil pointers are dereferenced
//  7. anything else becomes Fallback(fmt.Sprint(v))
func Of(v any) (Value, error) {
	if IsNull(v) {
		return nil, NewArgumentError("literal", "", "value is null")
	}

	switch val := v.(type) {
	case Value:
		if err := checkFinite(val); err != nil {
			return nil, err
		}
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint:
		return fromUint(uint64(val))
	case uint64:
		return fromUint(val)
	case float32:
		return finite(Float32(val))
	case float64:
		return finite(Float(val))
	case *apd.Decimal:
		return NewDecimal(val)
	case apd.Decimal:
		return NewDecimal(&val)
	case time.Time:
		return Timestamp(val), nil
	case fmt.Stringer:
		return Fallback{Text: val.String(), TypeName: fmt.Sprintf("%T", v)}, nil
	}

	return ofKind(v)
}

// Render classifies v and returns its literal token.
func Render(v any) (string, error) {
	val, err := Of(v)
	if err != nil {
		return "", err
	}
	return val.Literal(), nil
}

// IsNull reports whether v is nil or a nil pointer, map, slice, channel,
// function or interface.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// ofKind handles values whose dynamic type is not a built-in scalar:
// named scalar types, pointers and the catch-all.
func ofKind(v any) (Value, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint())
	case reflect.Float32:
		return finite(Float32(rv.Float()))
	case reflect.Float64:
		return finite(Float(rv.Float()))
	case reflect.Pointer:
		return Of(rv.Elem().Interface())
	default:
		return Fallback{Text: fmt.Sprint(v), TypeName: fmt.Sprintf("%T", v)}, nil
	}
}

// fromUint widens u to Int when it fits and to an exact Decimal otherwise.
func fromUint(u uint64) (Value, error) {
	if u <= math.MaxInt64 {
		return Int(int64(u)), nil
	}
	return ParseDecimal(strconv.FormatUint(u, 10))
}

func finite(v Value) (Value, error) {
	if err := checkFinite(v); err != nil {
		return nil, err
	}
	return v, nil
}
