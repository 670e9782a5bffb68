package traversal

import (
	"math"
	"strconv"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
	"github.com/cwoodland/CuriousGremlin/internal/steps"
)

// Sort order tokens rendered inside by().
const (
	orderAscending  = "incr"
	orderDescending = "decr"
)

func orderToken(ascending bool) string {
	if ascending {
		return orderAscending
	}
	return orderDescending
}

// Order sorts traversers by their own value: .order().by(incr).
func (b *Builder) Order(ascending bool) *Builder {
	return b.append(kindSame, steps.Chain(
		steps.Call("order"),
		steps.Call("by", orderToken(ascending)),
	))
}

// OrderBy sorts elements by a property: .order().by('age',incr).
func (b *Builder) OrderBy(key string, ascending bool) *Builder {
	if !b.ready("order") {
		return b
	}
	if err := requireText("order", "key", key); err != nil {
		return b.fail(err)
	}
	return b.append(kindSame, steps.Chain(
		steps.Call("order"),
		steps.Call("by", literal.Quote(key), orderToken(ascending)),
	))
}

// Limit keeps the first n traversers.
func (b *Builder) Limit(n int) *Builder { return b.bounded("limit", n) }

// Skip drops the first n traversers.
func (b *Builder) Skip(n int) *Builder { return b.bounded("skip", n) }

// Tail keeps the last n traversers.
func (b *Builder) Tail(n int) *Builder { return b.bounded("tail", n) }

// Sample keeps n traversers chosen at random.
func (b *Builder) Sample(n int) *Builder { return b.bounded("sample", n) }

// Range keeps traversers from position lo up to, not including, hi.
// Both bounds must be non-negative; lo <= hi is left to the engine.
func (b *Builder) Range(lo, hi int) *Builder {
	if !b.ready("range") {
		return b
	}
	if err := requireNonNegative("range", "lo", int64(lo)); err != nil {
		return b.fail(err)
	}
	if err := requireNonNegative("range", "hi", int64(hi)); err != nil {
		return b.fail(err)
	}
	return b.call(kindSame, "range", strconv.Itoa(lo), strconv.Itoa(hi))
}

// Coin keeps each traverser with the given probability, in [0, 1].
func (b *Builder) Coin(probability float64) *Builder {
	if !b.ready("coin") {
		return b
	}
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return b.fail(literal.NewArgumentError("coin", "probability", "must be within [0, 1], got %v", probability))
	}
	return b.call(kindSame, "coin", literal.Float(probability).Literal())
}

// Barrier turns the lazy pipeline into a bulk-synchronous one.
func (b *Builder) Barrier() *Builder { return b.call(kindSame, "barrier") }

// TimeLimit bounds the traversal's execution time in milliseconds:
// .timeLimit(100). The directive is only text; the engine enforces it.
func (b *Builder) TimeLimit(milliseconds int64) *Builder {
	if !b.ready("timeLimit") {
		return b
	}
	if milliseconds <= 0 {
		return b.fail(literal.NewArgumentError("timeLimit", "milliseconds", "must be greater than zero, got %d", milliseconds))
	}
	return b.call(kindSame, "timeLimit", strconv.FormatInt(milliseconds, 10))
}

// bounded appends a window step taking one non-negative count.
func (b *Builder) bounded(name string, n int) *Builder {
	if !b.ready(name) {
		return b
	}
	if err := requireNonNegative(name, "n", int64(n)); err != nil {
		return b.fail(err)
	}
	return b.call(kindSame, name, strconv.Itoa(n))
}
