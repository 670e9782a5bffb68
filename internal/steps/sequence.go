package steps

import (
	"io"
	"strings"
)

// Sequence is an ordered, append-only list of steps.
// The zero value is an empty sequence ready to use.
type Sequence struct {
	last *node
	n    int
}

type node struct {
	step Step
	prev *node
}

// Append returns a sequence holding s's steps followed by step.
// s itself is unchanged.
func (s Sequence) Append(step Step) Sequence {
	return Sequence{last: &node{step: step, prev: s.last}, n: s.n + 1}
}

// Fork returns an independent continuation of s. Appending to either
// sequence afterward never affects the other; the common prefix is shared.
func (s Sequence) Fork() Sequence {
	return s
}

// Len returns the number of steps.
func (s Sequence) Len() int { return s.n }

// Last returns the most recently appended step.
func (s Sequence) Last() (Step, bool) {
	if s.last == nil {
		return Step{}, false
	}
	return s.last.step, true
}

// Steps returns the steps in append order.
func (s Sequence) Steps() []Step {
	out := make([]Step, s.n)
	i := s.n - 1
	for n := s.last; n != nil; n = n.prev {
		out[i] = n.step
		i--
	}
	return out
}

// SharesPrefix reports whether the first prefix.Len() steps of s are the
// very same steps as prefix's, i.e. s was built by appending to prefix or
// to one of its forks.
func (s Sequence) SharesPrefix(prefix Sequence) bool {
	if prefix.n > s.n {
		return false
	}
	n := s.last
	for i := s.n; i > prefix.n; i-- {
		n = n.prev
	}
	return n == prefix.last
}

// String concatenates the step text in append order.
func (s Sequence) String() string {
	all := s.Steps()
	size := 0
	for _, st := range all {
		size += len(st.text)
	}

	var b strings.Builder
	b.Grow(size)
	for _, st := range all {
		b.WriteString(st.text)
	}
	return b.String()
}

// WriteTo writes the rendered sequence to w.
func (s Sequence) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, st := range s.Steps() {
		n, err := io.WriteString(w, st.text)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
