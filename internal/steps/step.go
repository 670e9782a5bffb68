package steps

import "strings"

// Step is one rendered fragment of a traversal program.
type Step struct {
	name string
	text string
}

// Call renders a step invocation: .name(arg1,arg2,...).
// Arguments must already be rendered literals or nested programs.
func Call(name string, args ...string) Step {
	var b strings.Builder
	b.Grow(len(name) + 3 + 8*len(args))
	b.WriteByte('.')
	b.WriteString(name)
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(arg)
	}
	b.WriteByte(')')
	return Step{name: name, text: b.String()}
}

// Chain joins several calls into one step, named after the first. It is
// used for steps that carry their own modulators, such as
// .addE('knows').to(g.V('1')).
func Chain(first Step, rest ...Step) Step {
	var b strings.Builder
	b.WriteString(first.text)
	for _, s := range rest {
		b.WriteString(s.text)
	}
	return Step{name: first.name, text: b.String()}
}

// Source renders the seed of a program, such as g.V() or __.
func Source(name, text string) Step {
	return Step{name: name, text: text}
}

// Name returns the step name, e.g. "has" or "V".
func (s Step) Name() string { return s.name }

// Text returns the rendered fragment.
func (s Step) Text() string { return s.text }

// String implements fmt.Stringer.
func (s Step) String() string { return s.text }
