// Package steps holds rendered traversal steps and the persistent sequence
// that orders them.
//
// A Sequence is an immutable singly linked list read from its last step.
// Append returns a new Sequence whose prefix is shared with the receiver,
// so forking a traversal branch is a plain value copy: two sequences that
// start from the same fork point share every step up to it and never see
// each other's later steps.
//
//	base := steps.Sequence{}.Append(steps.Source("V", "g.V()"))
//	left := base.Append(steps.Call("out"))
//	right := base.Append(steps.Call("in"))
//	// base.String() == "g.V()"
//	// left.String() == "g.V().out()", right.String() == "g.V().in()"
//
// Rendering concatenates step text in append order with no separators; each
// step carries its own leading dot.
package steps
