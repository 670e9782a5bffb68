package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
)

func TestPredicateSealed(t *testing.T) {
	var _ Predicate = Equal{}
	var _ Predicate = NotEqual{}
	var _ Predicate = LessThan{}
	var _ Predicate = LessThanOrEqual{}
	var _ Predicate = GreaterThan{}
	var _ Predicate = GreaterThanOrEqual{}
	var _ Predicate = Inside{}
	var _ Predicate = Outside{}
	var _ Predicate = Between{}
	var _ Predicate = Within{}
	var _ Predicate = Without{}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		pred Predicate
		want string
	}{
		{name: "eq string", pred: Equal{Value: "a"}, want: "eq('a')"},
		{name: "neq label", pred: NotEqual{Value: "a"}, want: "neq('a')"},
		{name: "lt", pred: LessThan{Value: 10}, want: "lt(10)"},
		{name: "lte", pred: LessThanOrEqual{Value: 10}, want: "lte(10)"},
		{name: "gt float", pred: GreaterThan{Value: 0.5}, want: "gt(0.5)"},
		{name: "gte", pred: GreaterThanOrEqual{Value: -3}, want: "gte(-3)"},
		{name: "inside", pred: Inside{Lo: 1, Hi: 9}, want: "inside(1,9)"},
		{name: "outside", pred: Outside{Lo: 1, Hi: 9}, want: "outside(1,9)"},
		{name: "between", pred: Between{Lo: 25, Hi: 35}, want: "between(25,35)"},
		{name: "between reversed bounds", pred: Between{Lo: 35, Hi: 25}, want: "between(35,25)"},
		{name: "within single", pred: Within{"value"}, want: "within('value')"},
		{name: "within keeps order and duplicates", pred: Within{"b", "a", "b"}, want: "within('b','a','b')"},
		{name: "within mixed kinds", pred: Within{1, "x", true}, want: "within(1,'x',true)"},
		{name: "within empty", pred: Within{}, want: "within()"},
		{name: "without", pred: Without{"x"}, want: "without('x')"},
		{name: "escaped operand", pred: Equal{Value: "O'Brien"}, want: `eq('O\'Brien')`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Render(tc.pred)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(nil)
	assert.ErrorIs(t, err, literal.ErrInvalidArgument)

	_, err = Render(Equal{Value: nil})
	require.Error(t, err)
	assert.ErrorIs(t, err, literal.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "eq operand 0")

	_, err = Render(Within{"a", nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "within operand 1")

	_, err = Render((*Equal)(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported predicate type")
}

func TestOperandsAreCopies(t *testing.T) {
	w := Within{"a", "b"}
	ops := w.Operands()
	ops[0] = "changed"
	assert.Equal(t, "a", w[0])
}

func TestByName(t *testing.T) {
	tests := []struct {
		name     string
		operands []any
		want     string
	}{
		{name: "eq", operands: []any{1}, want: "eq(1)"},
		{name: "neq", operands: []any{"a"}, want: "neq('a')"},
		{name: "lt", operands: []any{1}, want: "lt(1)"},
		{name: "lte", operands: []any{1}, want: "lte(1)"},
		{name: "gt", operands: []any{1}, want: "gt(1)"},
		{name: "gte", operands: []any{1}, want: "gte(1)"},
		{name: "inside", operands: []any{1, 2}, want: "inside(1,2)"},
		{name: "outside", operands: []any{1, 2}, want: "outside(1,2)"},
		{name: "between", operands: []any{25, 35}, want: "between(25,35)"},
		{name: "within", operands: []any{"a", "b", "c"}, want: "within('a','b','c')"},
		{name: "without", operands: []any{"x"}, want: "without('x')"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ByName(tc.name, tc.operands...)
			require.NoError(t, err)
			assert.Equal(t, tc.name, p.Name())

			got, err := Render(p)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestByNameErrors(t *testing.T) {
	_, err := ByName("between", 1)
	assert.True(t, literal.IsInvalidArgument(err))

	_, err = ByName("eq")
	assert.True(t, literal.IsInvalidArgument(err))

	_, err = ByName("like", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown predicate")
}
