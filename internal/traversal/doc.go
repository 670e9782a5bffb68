// Package traversal builds traversal program text through a fluent API.
//
// A program starts at an entry point (Vertices, Vertex, Edges, AddVertex,
// Inject or Anonymous) and grows one step per method call:
//
//	q := traversal.Vertices().
//		HasLabel("person").
//		Values("age").
//		IsPred(predicate.Between{Lo: 25, Hi: 35})
//	text, err := q.Program()
//	// g.V().has('person').values('age').is(between(25,35))
//
// # Errors
//
// Step methods never return errors. The first invalid argument is recorded
// on the builder, the offending step is not appended, and every later call
// is ignored. Program returns that error instead of text, so a malformed or
// partially escaped program never leaves the builder.
//
// # Branches
//
// Control steps (And, Or, Not, Choose, Coalesce, Union, Optional, Repeat,
// WhereTraversal, AddEdgeTo) embed sub-traversals as nested programs. A
// sub-traversal that continues from the current position is created with
// CreateSubQuery: it starts with a copy of the parent's steps, and neither
// builder sees steps the other appends afterward.
//
//	base := traversal.Vertices().HasLabel("person")
//	cond := base.CreateSubQuery().Has("age")
//	adults := base.CreateSubQuery().Values("age")
//	names := base.CreateSubQuery().Values("name")
//	base.Choose(cond, adults, names)
//
// Once embedded, a sub-traversal is read-only: it may be embedded again but
// appending to it records ErrEmbedded.
//
// # Equality
//
// Builders are compared by rendered text. Two builders that render the same
// program are Equal and have the same Hash, however they were built.
package traversal
