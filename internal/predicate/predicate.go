package predicate

// Predicate is a named comparison or containment test.
type Predicate interface {
	// Name returns the traversal-language function name (e.g. "between").
	Name() string

	// Operands returns the operands in render order.
	Operands() []any

	predicateNode() // Sealed
}

// Equal matches values equal to Value.
type Equal struct{ Value any }

// NotEqual matches values different from Value.
type NotEqual struct{ Value any }

// LessThan matches values strictly below Value.
type LessThan struct{ Value any }

// LessThanOrEqual matches values at or below Value.
type LessThanOrEqual struct{ Value any }

// GreaterThan matches values strictly above Value.
type GreaterThan struct{ Value any }

// GreaterThanOrEqual matches values at or above Value.
type GreaterThanOrEqual struct{ Value any }

// Inside matches values strictly between Lo and Hi.
type Inside struct{ Lo, Hi any }

// Outside matches values strictly below Lo or above Hi.
type Outside struct{ Lo, Hi any }

// Between matches values in the half-open range [Lo, Hi).
// Lo <= Hi is not checked; the executing engine decides.
type Between struct{ Lo, Hi any }

// Within matches values contained in the set.
type Within []any

// Without matches values absent from the set.
type Without []any

func (Equal) predicateNode()              {}
func (NotEqual) predicateNode()           {}
func (LessThan) predicateNode()           {}
func (LessThanOrEqual) predicateNode()    {}
func (GreaterThan) predicateNode()        {}
func (GreaterThanOrEqual) predicateNode() {}
func (Inside) predicateNode()             {}
func (Outside) predicateNode()            {}
func (Between) predicateNode()            {}
func (Within) predicateNode()             {}
func (Without) predicateNode()            {}

func (Equal) Name() string              { return "eq" }
func (NotEqual) Name() string           { return "neq" }
func (LessThan) Name() string           { return "lt" }
func (LessThanOrEqual) Name() string    { return "lte" }
func (GreaterThan) Name() string        { return "gt" }
func (GreaterThanOrEqual) Name() string { return "gte" }
func (Inside) Name() string             { return "inside" }
func (Outside) Name() string            { return "outside" }
func (Between) Name() string            { return "between" }
func (Within) Name() string             { return "within" }
func (Without) Name() string            { return "without" }

func (p Equal) Operands() []any              { return []any{p.Value} }
func (p NotEqual) Operands() []any           { return []any{p.Value} }
func (p LessThan) Operands() []any           { return []any{p.Value} }
func (p LessThanOrEqual) Operands() []any    { return []any{p.Value} }
func (p GreaterThan) Operands() []any        { return []any{p.Value} }
func (p GreaterThanOrEqual) Operands() []any { return []any{p.Value} }
func (p Inside) Operands() []any             { return []any{p.Lo, p.Hi} }
func (p Outside) Operands() []any            { return []any{p.Lo, p.Hi} }
func (p Between) Operands() []any            { return []any{p.Lo, p.Hi} }
func (p Within) Operands() []any             { return append([]any(nil), p...) }
func (p Without) Operands() []any            { return append([]any(nil), p...) }

// ByName builds the predicate whose function name is name from operands.
// Single-operand predicates take exactly one operand and range predicates
// exactly two; Within and Without take any number.
func ByName(name string, operands ...any) (Predicate, error) {
	arity := func(n int) error {
		if len(operands) != n {
			return argumentError(name, "takes %d operand(s), got %d", n, len(operands))
		}
		return nil
	}

	switch name {
	case "eq", "neq", "lt", "lte", "gt", "gte":
		if err := arity(1); err != nil {
			return nil, err
		}
	case "inside", "outside", "between":
		if err := arity(2); err != nil {
			return nil, err
		}
	}

	switch name {
	case "eq":
		return Equal{Value: operands[0]}, nil
	case "neq":
		return NotEqual{Value: operands[0]}, nil
	case "lt":
		return LessThan{Value: operands[0]}, nil
	case "lte":
		return LessThanOrEqual{Value: operands[0]}, nil
	case "gt":
		return GreaterThan{Value: operands[0]}, nil
	case "gte":
		return GreaterThanOrEqual{Value: operands[0]}, nil
	case "inside":
		return Inside{Lo: operands[0], Hi: operands[1]}, nil
	case "outside":
		return Outside{Lo: operands[0], Hi: operands[1]}, nil
	case "between":
		return Between{Lo: operands[0], Hi: operands[1]}, nil
	case "within":
		return Within(operands), nil
	case "without":
		return Without(operands), nil
	default:
		return nil, argumentError(name, "unknown predicate")
	}
}
