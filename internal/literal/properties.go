package literal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Properties is an ordered collection of property key/value pairs.
// Keys are unique; iteration follows first insertion order.
// A nil *Properties behaves as an empty collection.
type Properties struct {
	keys   []string
	values map[string]any
}

// NewProperties creates an empty collection.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]any)}
}

// P builds Properties from alternating key/value arguments:
//
//	P("name", "marko", "age", 29)
//
// It panics if kv has odd length or a key is not a string.
func P(kv ...any) *Properties {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("literal.P: odd number of arguments (%d)", len(kv)))
	}
	p := NewProperties()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("literal.P: key at position %d is %T, not string", i, kv[i]))
		}
		p.Set(key, kv[i+1])
	}
	return p
}

// Set stores value under key and returns p for chaining.
// Setting an existing key replaces its value without moving it.
// A nil value is stored but never rendered.
func (p *Properties) Set(key string, value any) *Properties {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get returns the value stored under key.
func (p *Properties) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Delete removes key, preserving the order of the remaining keys.
func (p *Properties) Delete(key string) {
	if p == nil {
		return
	}
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys, including keys with null values.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Range calls fn for each pair in insertion order until fn returns false.
func (p *Properties) Range(fn func(key string, value any) bool) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		if !fn(k, p.values[k]) {
			return
		}
	}
}

// RenderProperties renders p as a comma-separated list of 'key', value
// pairs. Pairs whose value is null are skipped entirely; an empty or nil
// collection renders as "".
//
// Example: {"name": "O'Brien", "age": nil} renders 'name', 'O\'Brien'
func RenderProperties(p *Properties) (string, error) {
	pairs, err := RenderPairs(p)
	if err != nil {
		return "", err
	}
	return strings.Join(pairs, ","), nil
}

// RenderPairs renders each non-null pair of p as 'key', value, in order.
func RenderPairs(p *Properties) ([]string, error) {
	if p.Len() == 0 {
		return nil, nil
	}

	pairs := make([]string, 0, len(p.keys))
	for _, key := range p.keys {
		value := p.values[key]
		if IsNull(value) {
			continue
		}
		lit, err := Render(value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
		pairs = append(pairs, Quote(key)+", "+lit)
	}
	return pairs, nil
}

// PropertiesOf flattens a JSON-encodable value into Properties, following
// the field order of its JSON encoding. The value must encode as a JSON
// object. Null fields are dropped; nested objects and arrays are carried as
// their JSON text; numbers keep full precision (Int, or an exact Decimal).
func PropertiesOf(v any) (*Properties, error) {
	if IsNull(v) {
		return nil, NewArgumentError("properties", "", "value is null")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("properties: encode %T: %w", v, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("properties: decode %T: %w", v, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, NewArgumentError("properties", "", "%T does not encode as a JSON object", v)
	}

	props := NewProperties()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("properties: decode key: %w", err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("properties: decode %q: %w", key, err)
		}
		value, err := jsonScalar(raw)
		if err != nil {
			return nil, fmt.Errorf("properties: field %q: %w", key, err)
		}
		if value == nil {
			continue
		}
		props.Set(key, value)
	}
	return props, nil
}

// jsonScalar converts one raw JSON value into a property value.
func jsonScalar(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch raw[0] {
	case 'n':
		return nil, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return b, nil
	case '{', '[':
		return string(raw), nil
	default:
		n := json.Number(raw)
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		d, _, err := apd.NewFromString(n.String())
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", n, err)
		}
		return NewDecimal(d)
	}
}
