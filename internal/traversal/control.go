package traversal

import (
	"fmt"
	"strconv"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
	"github.com/cwoodland/CuriousGremlin/internal/steps"
)

// RepeatStyle selects the iteration order of Repeat.
type RepeatStyle int

const (
	// DoWhile runs the body before each bound check:
	// .repeat(<body>).times(n).
	DoWhile RepeatStyle = iota
	// WhileDo checks the bound before each run of the body:
	// .times(n).repeat(<body>).
	WhileDo
)

func (s RepeatStyle) String() string {
	switch s {
	case DoWhile:
		return "do-while"
	case WhileDo:
		return "while-do"
	default:
		return fmt.Sprintf("RepeatStyle(%d)", int(s))
	}
}

// And keeps traversers for which every sub-traversal yields a result:
// .and(<p1>,<p2>,...).
func (b *Builder) And(subs ...*Builder) *Builder {
	return b.variadic("and", false, subs)
}

// Or keeps traversers for which any sub-traversal yields a result.
func (b *Builder) Or(subs ...*Builder) *Builder {
	return b.variadic("or", false, subs)
}

// Not keeps traversers for which sub yields nothing: .not(<sub>).
func (b *Builder) Not(sub *Builder) *Builder {
	return b.control("not", kindSame, sub)
}

// Choose branches on cond: traversers for which cond yields a result
// continue with onTrue, the rest with onFalse:
// .choose(<cond>,<onTrue>,<onFalse>).
func (b *Builder) Choose(cond, onTrue, onFalse *Builder) *Builder {
	if !b.ready("choose") {
		return b
	}
	programs, err := b.embed("choose", cond, onTrue, onFalse)
	if err != nil {
		return b.fail(err)
	}
	b.call(commonKind(onTrue, onFalse), "choose", programs...)
	return b.settle(cond, onTrue, onFalse)
}

// Coalesce continues with the first sub-traversal that yields a result:
// .coalesce(<p1>,<p2>,...).
func (b *Builder) Coalesce(subs ...*Builder) *Builder {
	return b.variadic("coalesce", true, subs)
}

// Union merges the results of every sub-traversal: .union(<p1>,<p2>,...).
func (b *Builder) Union(subs ...*Builder) *Builder {
	return b.variadic("union", true, subs)
}

// Optional continues with body when it yields a result and with the
// current traverser otherwise: .optional(<body>).
func (b *Builder) Optional(body *Builder) *Builder {
	if !b.ready("optional") {
		return b
	}
	programs, err := b.embed("optional", body)
	if err != nil {
		return b.fail(err)
	}
	kind := KindUnknown
	if body.kind == b.kind {
		kind = b.kind
	}
	b.call(kind, "optional", programs...)
	return b.settle(body)
}

// Repeat runs body at most times times, in the given style. times is the
// iteration bound, not a condition.
func (b *Builder) Repeat(body *Builder, times int, style RepeatStyle) *Builder {
	if !b.ready("repeat") {
		return b
	}
	if err := requireNonNegative("repeat", "times", int64(times)); err != nil {
		return b.fail(err)
	}
	programs, err := b.embed("repeat", body)
	if err != nil {
		return b.fail(err)
	}

	loop := steps.Call("repeat", programs[0])
	bound := steps.Call("times", strconv.Itoa(times))
	switch style {
	case DoWhile:
		b.append(body.kind, steps.Chain(loop, bound))
	case WhileDo:
		b.append(body.kind, steps.Chain(bound, loop))
	default:
		return b.fail(literal.NewArgumentError("repeat", "style", "unknown repeat style %d", int(style)))
	}
	return b.settle(body)
}

// variadic appends a control step embedding one or more sub-traversals.
// When branching is set the step yields the branches' common kind.
func (b *Builder) variadic(op string, branching bool, subs []*Builder) *Builder {
	if !b.ready(op) {
		return b
	}
	if len(subs) == 0 {
		return b.fail(literal.NewArgumentError(op, "traversals", "at least one traversal is required"))
	}
	programs, err := b.embed(op, subs...)
	if err != nil {
		return b.fail(err)
	}
	kind := kindSame
	if branching {
		kind = commonKind(subs...)
	}
	b.call(kind, op, programs...)
	return b.settle(subs...)
}

// control appends a control step embedding exactly one sub-traversal.
func (b *Builder) control(op string, kind Kind, sub *Builder) *Builder {
	if !b.ready(op) {
		return b
	}
	programs, err := b.embed(op, sub)
	if err != nil {
		return b.fail(err)
	}
	b.call(kind, op, programs...)
	return b.settle(sub)
}

// embed renders each sub-traversal to its full program text.
func (b *Builder) embed(op string, subs ...*Builder) ([]string, error) {
	programs := make([]string, len(subs))
	for i, sub := range subs {
		arg := fmt.Sprintf("traversal[%d]", i)
		switch {
		case sub == nil:
			return nil, literal.NewArgumentError(op, arg, "must not be null")
		case sub == b:
			return nil, literal.NewArgumentError(op, arg, "cannot embed a traversal in itself")
		case sub.err != nil:
			return nil, fmt.Errorf("%s: %s: %w", op, arg, sub.err)
		}
		programs[i] = sub.seq.String()
	}
	return programs, nil
}

// settle moves embedded sub-traversals to Embedded once the control step
// holding them has been appended.
func (b *Builder) settle(subs ...*Builder) *Builder {
	if b.err != nil {
		return b
	}
	for _, sub := range subs {
		sub.state = Embedded
	}
	return b
}

func commonKind(subs ...*Builder) Kind {
	kind := subs[0].kind
	for _, sub := range subs[1:] {
		if sub.kind != kind {
			return KindUnknown
		}
	}
	return kind
}
