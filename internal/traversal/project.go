package traversal

import (
	"fmt"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
)

// Values emits property values, of the given keys or of all keys:
// .values('age').
func (b *Builder) Values(keys ...string) *Builder {
	return b.keyed(KindValue, "values", keys)
}

// Properties emits property objects, of the given keys or of all keys.
func (b *Builder) Properties(keys ...string) *Builder {
	return b.keyed(KindValue, "properties", keys)
}

// Label emits element labels.
func (b *Builder) Label() *Builder { return b.call(KindValue, "label") }

// ID emits element ids.
func (b *Builder) ID() *Builder { return b.call(KindValue, "id") }

// Count emits the number of traversers.
func (b *Builder) Count() *Builder { return b.call(KindValue, "count") }

// Sum emits the sum of numeric values.
func (b *Builder) Sum() *Builder { return b.call(KindValue, "sum") }

// Mean emits the mean of numeric values.
func (b *Builder) Mean() *Builder { return b.call(KindValue, "mean") }

// Min emits the smallest value.
func (b *Builder) Min() *Builder { return b.call(KindValue, "min") }

// Max emits the largest value.
func (b *Builder) Max() *Builder { return b.call(KindValue, "max") }

// Fold gathers all traversers into one list.
func (b *Builder) Fold() *Builder { return b.call(KindValue, "fold") }

// Unfold spreads a list back into traversers. The element kind is not
// recoverable from the steps, so it becomes unknown.
func (b *Builder) Unfold() *Builder { return b.call(KindUnknown, "unfold") }

// Dedup drops repeated traversers.
func (b *Builder) Dedup() *Builder { return b.call(kindSame, "dedup") }

// As labels the current step for later Select or Where: .as('a').
func (b *Builder) As(alias string) *Builder {
	if !b.ready("as") {
		return b
	}
	if err := requireText("as", "alias", alias); err != nil {
		return b.fail(err)
	}
	return b.call(kindSame, "as", literal.Quote(alias))
}

// Select emits the objects bound to labeled steps: .select('a','b').
func (b *Builder) Select(aliases ...string) *Builder {
	if !b.ready("select") {
		return b
	}
	if len(aliases) == 0 {
		return b.fail(literal.NewArgumentError("select", "aliases", "at least one alias is required"))
	}
	args, err := quoteAll("select", "aliases", aliases)
	if err != nil {
		return b.fail(err)
	}
	return b.call(KindUnknown, "select", args...)
}

// Constant replaces every traverser with value: .constant('unknown').
func (b *Builder) Constant(value any) *Builder {
	if !b.ready("constant") {
		return b
	}
	lit, err := literal.Render(value)
	if err != nil {
		return b.fail(fmt.Errorf("constant: %w", err))
	}
	return b.call(KindValue, "constant", lit)
}

// Inject inserts values into the stream: .inject('a',1).
func (b *Builder) Inject(values ...any) *Builder {
	if !b.ready("inject") {
		return b
	}
	if len(values) == 0 {
		return b.fail(literal.NewArgumentError("inject", "values", "at least one value is required"))
	}
	args, err := renderAll("inject", values)
	if err != nil {
		return b.fail(err)
	}
	return b.call(KindUnknown, "inject", args...)
}

// Aggregate stores every traverser in a side-effect collection:
// .aggregate('x').
func (b *Builder) Aggregate(name string) *Builder {
	if !b.ready("aggregate") {
		return b
	}
	if err := requireText("aggregate", "name", name); err != nil {
		return b.fail(err)
	}
	return b.call(kindSame, "aggregate", literal.Quote(name))
}

// keyed appends a step taking optional property keys.
func (b *Builder) keyed(kind Kind, name string, keys []string) *Builder {
	if !b.ready(name) {
		return b
	}
	args, err := quoteAll(name, "keys", keys)
	if err != nil {
		return b.fail(err)
	}
	return b.call(kind, name, args...)
}
