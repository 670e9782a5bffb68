// Package predicate models the comparison and containment tests that filter
// steps embed, and renders them as predicate-call text.
//
// Predicate is a sealed interface; only the types in this package implement
// it. Renderers switch exhaustively over:
//
//	Equal, NotEqual                         eq(v)     neq(v)
//	LessThan, LessThanOrEqual               lt(v)     lte(v)
//	GreaterThan, GreaterThanOrEqual         gt(v)     gte(v)
//	Inside, Outside, Between                inside(lo,hi) ...
//	Within, Without                         within(v1,v2,...) without(...)
//
// Operands are rendered with the literal package, so predicate text is
// escaped exactly like any other literal. Within and Without keep their
// operands in the given order, duplicates included.
//
// Example:
//
//	predicate.Render(predicate.Between{Lo: 25, Hi: 35}) // "between(25,35)"
//	predicate.Render(predicate.Within{"a", "b"})        // "within('a','b')"
package predicate
