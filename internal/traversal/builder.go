package traversal

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
	"github.com/cwoodland/CuriousGremlin/internal/steps"
)

// ErrInvalidArgument is matched by every argument error the builder records.
var ErrInvalidArgument = literal.ErrInvalidArgument

// ErrEmbedded is recorded when a step is appended to a traversal that has
// already been embedded in a parent's control step.
var ErrEmbedded = errors.New("traversal already embedded")

// HashDomain prefixes program text when computing Hash.
// The version suffix allows a future change of algorithm.
const HashDomain = "curiousgremlin/program/v1"

// Kind is the element kind the traversal yields after its last step, as far
// as the builder can tell from the steps themselves.
type Kind int

const (
	KindUnknown Kind = iota
	KindVertex
	KindEdge
	KindValue

	kindSame Kind = -1 // step keeps the current kind
)

func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	case KindValue:
		return "value"
	default:
		return "unknown"
	}
}

// State is the position of a builder in the branch forking protocol.
type State int

const (
	// Open builders accept further steps.
	Open State = iota
	// Forked builders have seeded at least one sub-query. They still accept
	// steps; the sub-queries never see them.
	Forked
	// Embedded builders have been spliced into a parent's control step.
	// They reject further steps but may be embedded again.
	Embedded
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Forked:
		return "forked"
	case Embedded:
		return "embedded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Builder accumulates the steps of one traversal branch.
//
// Every step method appends exactly one step and returns the receiver, so
// calls chain. A step whose arguments are invalid is not appended; instead
// the builder records the error and ignores every later call. Check Err, or
// use Program, before handing the text to a client.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	seq   steps.Sequence
	kind  Kind
	state State
	err   error
}

func newBuilder(kind Kind, seed steps.Step) *Builder {
	return &Builder{
		seq:  steps.Sequence{}.Append(seed),
		kind: kind,
	}
}

func failedBuilder(err error) *Builder {
	return &Builder{err: err}
}

// Err returns the first error recorded by a step, or nil.
func (b *Builder) Err() error { return b.err }

// Kind returns the element kind yielded by the last step.
func (b *Builder) Kind() Kind { return b.kind }

// State returns the builder's forking state.
func (b *Builder) State() State { return b.state }

// Len returns the number of steps, including the seed.
func (b *Builder) Len() int { return b.seq.Len() }

// Steps returns the rendered steps in order.
func (b *Builder) Steps() []steps.Step { return b.seq.Steps() }

// Program returns the rendered program text, or the recorded error.
func (b *Builder) Program() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return b.seq.String(), nil
}

// String returns the rendered program text. A builder holding an error
// renders as the empty string, never as a partial program.
func (b *Builder) String() string {
	if b.err != nil {
		return ""
	}
	return b.seq.String()
}

// Equal reports whether b and other render the same program text.
// Equality is textual: builders with different construction paths that
// render identically are equal. Builders holding an error equal nothing.
func (b *Builder) Equal(other *Builder) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.err != nil || other.err != nil {
		return false
	}
	return b.seq.String() == other.seq.String()
}

// Hash returns the content hash of the rendered program. Equal builders
// hash identically; use it (or String) as a map or set key.
func (b *Builder) Hash() string {
	return HashProgram(b.String())
}

// HashProgram computes SHA-256 over HashDomain, a zero byte and text, hex
// encoded.
func HashProgram(text string) string {
	h := sha256.New()
	h.Write([]byte(HashDomain))
	h.Write([]byte{0x00})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// CreateSubQuery starts an independent continuation of b at its current
// position. The sub-query sees every step b holds now and none that either
// builder appends later. The receiver moves to Forked.
func (b *Builder) CreateSubQuery() *Builder {
	if b.state == Open {
		b.state = Forked
	}
	return &Builder{
		seq:  b.seq.Fork(),
		kind: b.kind,
		err:  b.err,
	}
}

// append adds step when the builder can accept it.
func (b *Builder) append(kind Kind, step steps.Step) *Builder {
	if b.err != nil {
		return b
	}
	if b.state == Embedded {
		b.err = fmt.Errorf("%s: %w", step.Name(), ErrEmbedded)
		return b
	}
	b.seq = b.seq.Append(step)
	if kind != kindSame {
		b.kind = kind
	}
	return b
}

// call appends .name(args...).
func (b *Builder) call(kind Kind, name string, args ...string) *Builder {
	return b.append(kind, steps.Call(name, args...))
}

// fail records err unless an earlier error is already recorded.
func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// ready reports whether a step may be built at all. Steps check it before
// rendering their arguments so that a dead builder does no work.
func (b *Builder) ready(op string) bool {
	if b.err != nil {
		return false
	}
	if b.state == Embedded {
		b.err = fmt.Errorf("%s: %w", op, ErrEmbedded)
		return false
	}
	return true
}

func requireText(op, arg, s string) error {
	if s == "" {
		return literal.NewArgumentError(op, arg, "must be non-empty")
	}
	return nil
}

func requireNonNegative(op, arg string, n int64) error {
	if n < 0 {
		return literal.NewArgumentError(op, arg, "must be non-negative, got %d", n)
	}
	return nil
}

// quoteAll renders non-empty text arguments as quoted literals.
func quoteAll(op, arg string, items []string) ([]string, error) {
	out := make([]string, len(items))
	for i, s := range items {
		if err := requireText(op, fmt.Sprintf("%s[%d]", arg, i), s); err != nil {
			return nil, err
		}
		out[i] = literal.Quote(s)
	}
	return out, nil
}

// renderAll renders values as literals.
func renderAll(op string, values []any) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		lit, err := literal.Render(v)
		if err != nil {
			return nil, fmt.Errorf("%s: value %d: %w", op, i, err)
		}
		out[i] = lit
	}
	return out, nil
}
