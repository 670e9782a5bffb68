package traversal

import (
	"fmt"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
	"github.com/cwoodland/CuriousGremlin/internal/predicate"
)

// Has keeps elements that have a property key: .has('key').
func (b *Builder) Has(key string) *Builder {
	if !b.ready("has") {
		return b
	}
	if err := requireText("has", "key", key); err != nil {
		return b.fail(err)
	}
	return b.call(kindSame, "has", literal.Quote(key))
}

// HasEq keeps elements whose key equals value: .has('key',value).
func (b *Builder) HasEq(key string, value any) *Builder {
	if !b.ready("has") {
		return b
	}
	if err := requireText("has", "key", key); err != nil {
		return b.fail(err)
	}
	lit, err := literal.Render(value)
	if err != nil {
		return b.fail(fmt.Errorf("has: %w", err))
	}
	return b.call(kindSame, "has", literal.Quote(key), lit)
}

// HasLabelEq keeps elements with the label whose key equals value:
// .has('label','key',value).
func (b *Builder) HasLabelEq(label, key string, value any) *Builder {
	if !b.ready("has") {
		return b
	}
	if err := requireText("has", "label", label); err != nil {
		return b.fail(err)
	}
	if err := requireText("has", "key", key); err != nil {
		return b.fail(err)
	}
	lit, err := literal.Render(value)
	if err != nil {
		return b.fail(fmt.Errorf("has: %w", err))
	}
	return b.call(kindSame, "has", literal.Quote(label), literal.Quote(key), lit)
}

// HasPred keeps elements whose key satisfies p: .has('key',within('a')).
func (b *Builder) HasPred(key string, p predicate.Predicate) *Builder {
	if !b.ready("has") {
		return b
	}
	if err := requireText("has", "key", key); err != nil {
		return b.fail(err)
	}
	text, err := predicate.Render(p)
	if err != nil {
		return b.fail(fmt.Errorf("has: %w", err))
	}
	return b.call(kindSame, "has", literal.Quote(key), text)
}

// HasLabel keeps elements carrying label. It renders in the single-argument
// has form, .has('label').
func (b *Builder) HasLabel(label string) *Builder {
	if !b.ready("has") {
		return b
	}
	if err := requireText("has", "label", label); err != nil {
		return b.fail(err)
	}
	return b.call(kindSame, "has", literal.Quote(label))
}

// HasNot keeps elements lacking a property key: .hasNot('key').
func (b *Builder) HasNot(key string) *Builder {
	if !b.ready("hasNot") {
		return b
	}
	if err := requireText("hasNot", "key", key); err != nil {
		return b.fail(err)
	}
	return b.call(kindSame, "hasNot", literal.Quote(key))
}

// HasID keeps the element with the given id: .hasId('id').
// The filter is rendered as given; whether an unknown id filters anything
// is up to the executing engine.
func (b *Builder) HasID(id string) *Builder {
	if !b.ready("hasId") {
		return b
	}
	if err := requireText("hasId", "id", id); err != nil {
		return b.fail(err)
	}
	return b.call(kindSame, "hasId", literal.Quote(id))
}

// HasKeys keeps properties whose key is one of keys: .hasKey('a','b').
func (b *Builder) HasKeys(keys ...string) *Builder {
	if !b.ready("hasKey") {
		return b
	}
	if len(keys) == 0 {
		return b.fail(literal.NewArgumentError("hasKey", "keys", "at least one key is required"))
	}
	args, err := quoteAll("hasKey", "keys", keys)
	if err != nil {
		return b.fail(err)
	}
	return b.call(kindSame, "hasKey", args...)
}

// HasValue keeps properties whose value is one of values: .hasValue(v,...).
func (b *Builder) HasValue(values ...any) *Builder {
	if !b.ready("hasValue") {
		return b
	}
	if len(values) == 0 {
		return b.fail(literal.NewArgumentError("hasValue", "values", "at least one value is required"))
	}
	args, err := renderAll("hasValue", values)
	if err != nil {
		return b.fail(err)
	}
	return b.call(kindSame, "hasValue", args...)
}

// Is keeps values equal to value: .is(value).
func (b *Builder) Is(value any) *Builder {
	if !b.ready("is") {
		return b
	}
	lit, err := literal.Render(value)
	if err != nil {
		return b.fail(fmt.Errorf("is: %w", err))
	}
	return b.call(kindSame, "is", lit)
}

// IsPred keeps values satisfying p: .is(between(25,35)).
func (b *Builder) IsPred(p predicate.Predicate) *Builder {
	if !b.ready("is") {
		return b
	}
	text, err := predicate.Render(p)
	if err != nil {
		return b.fail(fmt.Errorf("is: %w", err))
	}
	return b.call(kindSame, "is", text)
}

// Where keeps elements for which p holds against a labeled step, for
// example Where(predicate.NotEqual{Value: "a"}) renders .where(neq('a')).
func (b *Builder) Where(p predicate.Predicate) *Builder {
	if !b.ready("where") {
		return b
	}
	text, err := predicate.Render(p)
	if err != nil {
		return b.fail(fmt.Errorf("where: %w", err))
	}
	return b.call(kindSame, "where", text)
}

// WhereTraversal keeps elements for which sub yields a result:
// .where(<sub>).
func (b *Builder) WhereTraversal(sub *Builder) *Builder {
	return b.control("where", kindSame, sub)
}
