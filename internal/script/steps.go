package script

import (
	"fmt"
	"math"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
	"github.com/cwoodland/CuriousGremlin/internal/predicate"
	"github.com/cwoodland/CuriousGremlin/internal/traversal"
)

// stepFunc applies one step node to b. Argument errors from the builder are
// picked up by the caller through b.Err; stepFunc returns only errors about
// the shape of arg.
type stepFunc func(c *compiler, b *traversal.Builder, arg *Node, path string) error

// stepTable maps step names, as written in documents, to their compilers.
// It is filled in init because the control steps recurse through it.
var stepTable map[string]stepFunc

func init() {
	stepTable = map[string]stepFunc{
		// filters
		"has":      compileHas,
		"hasLabel": oneString((*traversal.Builder).HasLabel),
		"hasNot":   oneString((*traversal.Builder).HasNot),
		"hasId":    oneString((*traversal.Builder).HasID),
		"hasKey":   manyStrings((*traversal.Builder).HasKeys),
		"hasValue": manyValues((*traversal.Builder).HasValue),
		"is":       compileIs,
		"where":    compileWhere,

		// navigation
		"out":        manyStrings((*traversal.Builder).Out),
		"in":         manyStrings((*traversal.Builder).In),
		"both":       manyStrings((*traversal.Builder).Both),
		"outE":       manyStrings((*traversal.Builder).OutE),
		"inE":        manyStrings((*traversal.Builder).InE),
		"bothE":      manyStrings((*traversal.Builder).BothE),
		"outV":       nullary((*traversal.Builder).OutV),
		"inV":        nullary((*traversal.Builder).InV),
		"otherV":     nullary((*traversal.Builder).OtherV),
		"cyclicPath": nullary((*traversal.Builder).CyclicPath),
		"simplePath": nullary((*traversal.Builder).SimplePath),
		"path":       nullary((*traversal.Builder).Path),

		// projection
		"values":     manyStrings((*traversal.Builder).Values),
		"properties": manyStrings((*traversal.Builder).Properties),
		"label":      nullary((*traversal.Builder).Label),
		"id":         nullary((*traversal.Builder).ID),
		"count":      nullary((*traversal.Builder).Count),
		"sum":        nullary((*traversal.Builder).Sum),
		"mean":       nullary((*traversal.Builder).Mean),
		"min":        nullary((*traversal.Builder).Min),
		"max":        nullary((*traversal.Builder).Max),
		"fold":       nullary((*traversal.Builder).Fold),
		"unfold":     nullary((*traversal.Builder).Unfold),
		"dedup":      nullary((*traversal.Builder).Dedup),
		"as":         oneString((*traversal.Builder).As),
		"select":     manyStrings((*traversal.Builder).Select),
		"constant":   compileConstant,
		"inject":     manyValues((*traversal.Builder).Inject),
		"aggregate":  oneString((*traversal.Builder).Aggregate),

		// ordering and windows
		"order":     compileOrder,
		"orderBy":   compileOrderBy,
		"limit":     oneInt((*traversal.Builder).Limit),
		"skip":      oneInt((*traversal.Builder).Skip),
		"tail":      oneInt((*traversal.Builder).Tail),
		"sample":    oneInt((*traversal.Builder).Sample),
		"range":     compileRange,
		"coin":      compileCoin,
		"barrier":   nullary((*traversal.Builder).Barrier),
		"timeLimit": compileTimeLimit,

		// mutation
		"addV":     compileAddV,
		"addE":     compileAddE,
		"property": compileProperty,
		"drop":     nullary((*traversal.Builder).Drop),

		// control flow
		"and":      manyBranches((*traversal.Builder).And),
		"or":       manyBranches((*traversal.Builder).Or),
		"union":    manyBranches((*traversal.Builder).Union),
		"coalesce": manyBranches((*traversal.Builder).Coalesce),
		"not":      oneBranch((*traversal.Builder).Not),
		"optional": oneBranch((*traversal.Builder).Optional),
		"choose":   compileChoose,
		"repeat":   compileRepeat,
	}
}

func nullary(fn func(*traversal.Builder) *traversal.Builder) stepFunc {
	return func(c *compiler, b *traversal.Builder, arg *Node, path string) error {
		if !arg.IsNull() {
			return errorAt(c.file, arg, path, ErrCodeShape, "takes no argument, got %s", arg.describe())
		}
		fn(b)
		return nil
	}
}

func oneString(fn func(*traversal.Builder, string) *traversal.Builder) stepFunc {
	return func(c *compiler, b *traversal.Builder, arg *Node, path string) error {
		s, err := c.text(arg, path)
		if err != nil {
			return err
		}
		fn(b, s)
		return nil
	}
}

func manyStrings(fn func(*traversal.Builder, ...string) *traversal.Builder) stepFunc {
	return func(c *compiler, b *traversal.Builder, arg *Node, path string) error {
		ss, err := c.texts(arg, path)
		if err != nil {
			return err
		}
		fn(b, ss...)
		return nil
	}
}

func manyValues(fn func(*traversal.Builder, ...any) *traversal.Builder) stepFunc {
	return func(c *compiler, b *traversal.Builder, arg *Node, path string) error {
		values, err := scalarList(c.file, arg, path)
		if err != nil {
			return err
		}
		fn(b, values...)
		return nil
	}
}

func oneInt(fn func(*traversal.Builder, int) *traversal.Builder) stepFunc {
	return func(c *compiler, b *traversal.Builder, arg *Node, path string) error {
		n, err := c.integer(arg, path)
		if err != nil {
			return err
		}
		if n > math.MaxInt || n < math.MinInt {
			return errorAt(c.file, arg, path, ErrCodeShape, "%d is out of range", n)
		}
		fn(b, int(n))
		return nil
	}
}

func oneBranch(fn func(*traversal.Builder, *traversal.Builder) *traversal.Builder) stepFunc {
	return func(c *compiler, b *traversal.Builder, arg *Node, path string) error {
		sub, err := c.branch(b, arg, path)
		if err != nil {
			return err
		}
		fn(b, sub)
		return nil
	}
}

func manyBranches(fn func(*traversal.Builder, ...*traversal.Builder) *traversal.Builder) stepFunc {
	return func(c *compiler, b *traversal.Builder, arg *Node, path string) error {
		subs, err := c.branches(b, arg, path)
		if err != nil {
			return err
		}
		fn(b, subs...)
		return nil
	}
}

// compileHas handles the four has forms:
//
//	has: name                  -> .has('name')
//	has: [name, marko]         -> .has('name','marko')
//	has: [age, {gt: 30}]       -> .has('age',gt(30))
//	has: [person, age, 29]     -> .has('person','age',29)
func compileHas(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	if key, ok := arg.Text(); ok {
		b.Has(key)
		return nil
	}
	if arg.IsNull() || arg.Kind != List || len(arg.Items) < 2 || len(arg.Items) > 3 {
		return errorAt(c.file, arg, path, ErrCodeShape, "expected a key or a list of 2 or 3 items, got %s", arg.describe())
	}

	first, err := c.text(arg.Items[0], path+"[0]")
	if err != nil {
		return err
	}
	if len(arg.Items) == 3 {
		key, err := c.text(arg.Items[1], path+"[1]")
		if err != nil {
			return err
		}
		value, err := c.value(arg.Items[2], path+"[2]")
		if err != nil {
			return err
		}
		b.HasLabelEq(first, key, value)
		return nil
	}

	second := arg.Items[1]
	if second.Kind == Map {
		p, err := c.predicate(second, path+"[1]")
		if err != nil {
			return err
		}
		b.HasPred(first, p)
		return nil
	}
	value, err := c.value(second, path+"[1]")
	if err != nil {
		return err
	}
	b.HasEq(first, value)
	return nil
}

// compileIs takes a value or a predicate map.
func compileIs(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	if arg != nil && arg.Kind == Map {
		p, err := c.predicate(arg, path)
		if err != nil {
			return err
		}
		b.IsPred(p)
		return nil
	}
	value, err := c.value(arg, path)
	if err != nil {
		return err
	}
	b.Is(value)
	return nil
}

// compileWhere takes a predicate map or a list of steps.
func compileWhere(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	if arg != nil && arg.Kind == Map {
		p, err := c.predicate(arg, path)
		if err != nil {
			return err
		}
		b.Where(p)
		return nil
	}
	sub, err := c.branch(b, arg, path)
	if err != nil {
		return err
	}
	b.WhereTraversal(sub)
	return nil
}

func compileConstant(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	value, err := c.value(arg, path)
	if err != nil {
		return err
	}
	b.Constant(value)
	return nil
}

// compileOrder takes an optional direction; the default is ascending.
func compileOrder(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	asc := true
	if !arg.IsNull() {
		var err error
		if asc, err = c.direction(arg, path); err != nil {
			return err
		}
	}
	b.Order(asc)
	return nil
}

// compileOrderBy takes a key or [key, direction].
func compileOrderBy(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	if key, ok := arg.Text(); ok {
		b.OrderBy(key, true)
		return nil
	}
	if arg.IsNull() || arg.Kind != List || len(arg.Items) != 2 {
		return errorAt(c.file, arg, path, ErrCodeShape, "expected a key or [key, direction], got %s", arg.describe())
	}
	key, err := c.text(arg.Items[0], path+"[0]")
	if err != nil {
		return err
	}
	asc, err := c.direction(arg.Items[1], path+"[1]")
	if err != nil {
		return err
	}
	b.OrderBy(key, asc)
	return nil
}

func compileRange(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	if arg.IsNull() || arg.Kind != List || len(arg.Items) != 2 {
		return errorAt(c.file, arg, path, ErrCodeShape, "expected [lo, hi], got %s", arg.describe())
	}
	lo, err := c.integer(arg.Items[0], path+"[0]")
	if err != nil {
		return err
	}
	hi, err := c.integer(arg.Items[1], path+"[1]")
	if err != nil {
		return err
	}
	b.Range(int(lo), int(hi))
	return nil
}

func compileCoin(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	if arg != nil && arg.Kind == Scalar {
		switch v := arg.Value.(type) {
		case float64:
			b.Coin(v)
			return nil
		case int64:
			b.Coin(float64(v))
			return nil
		}
	}
	return errorAt(c.file, arg, path, ErrCodeShape, "expected a probability, got %s", arg.describe())
}

func compileTimeLimit(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	ms, err := c.integer(arg, path)
	if err != nil {
		return err
	}
	b.TimeLimit(ms)
	return nil
}

// compileAddV takes a label or {label, properties}.
func compileAddV(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	if arg.IsNull() {
		b.AddVertex("", nil)
		return nil
	}
	if label, ok := arg.Text(); ok {
		b.AddVertex(label, nil)
		return nil
	}
	if arg.Kind != Map {
		return errorAt(c.file, arg, path, ErrCodeShape, "expected a label or a map, got %s", arg.describe())
	}
	if err := c.onlyFields(arg, path, "label", "properties"); err != nil {
		return err
	}

	var label string
	if n, ok := arg.Field("label"); ok {
		var err error
		if label, err = c.text(n, path+".label"); err != nil {
			return err
		}
	}
	props, err := c.properties(arg, path)
	if err != nil {
		return err
	}
	b.AddVertex(label, props)
	return nil
}

// compileAddE takes {label, to, properties}; to is a vertex id or a list of
// steps.
func compileAddE(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	if arg.IsNull() || arg.Kind != Map {
		return errorAt(c.file, arg, path, ErrCodeShape, "expected {label, to, properties}, got %s", arg.describe())
	}
	if err := c.onlyFields(arg, path, "label", "to", "properties"); err != nil {
		return err
	}

	labelNode, _ := arg.Field("label")
	label, err := c.text(labelNode, path+".label")
	if err != nil {
		return err
	}
	props, err := c.properties(arg, path)
	if err != nil {
		return err
	}

	to, _ := arg.Field("to")
	if id, ok := to.Text(); ok {
		b.AddEdge(label, id, props)
		return nil
	}
	target, err := c.branch(b, to, path+".to")
	if err != nil {
		return err
	}
	b.AddEdgeTo(label, target, props)
	return nil
}

// compileProperty takes [key, value].
func compileProperty(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	if arg.IsNull() || arg.Kind != List || len(arg.Items) != 2 {
		return errorAt(c.file, arg, path, ErrCodeShape, "expected [key, value], got %s", arg.describe())
	}
	key, err := c.text(arg.Items[0], path+"[0]")
	if err != nil {
		return err
	}
	value, err := c.value(arg.Items[1], path+"[1]")
	if err != nil {
		return err
	}
	b.Property(key, value)
	return nil
}

// compileChoose takes [condition, onTrue, onFalse].
func compileChoose(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	if arg.IsNull() || arg.Kind != List || len(arg.Items) != 3 {
		return errorAt(c.file, arg, path, ErrCodeShape, "expected [condition, onTrue, onFalse], got %s", arg.describe())
	}
	subs, err := c.branches(b, arg, path)
	if err != nil {
		return err
	}
	b.Choose(subs[0], subs[1], subs[2])
	return nil
}

// compileRepeat takes {times, style, body}. style is do-while (default) or
// while-do.
func compileRepeat(c *compiler, b *traversal.Builder, arg *Node, path string) error {
	if arg.IsNull() || arg.Kind != Map {
		return errorAt(c.file, arg, path, ErrCodeShape, "expected {times, style, body}, got %s", arg.describe())
	}
	if err := c.onlyFields(arg, path, "times", "style", "body"); err != nil {
		return err
	}

	timesNode, _ := arg.Field("times")
	times, err := c.integer(timesNode, path+".times")
	if err != nil {
		return err
	}

	style := traversal.DoWhile
	if n, ok := arg.Field("style"); ok && !n.IsNull() {
		s, err := c.text(n, path+".style")
		if err != nil {
			return err
		}
		switch s {
		case traversal.DoWhile.String():
		case traversal.WhileDo.String():
			style = traversal.WhileDo
		default:
			return errorAt(c.file, n, path+".style", ErrCodeShape, "unknown style %q (want do-while or while-do)", s)
		}
	}

	bodyNode, _ := arg.Field("body")
	body, err := c.branch(b, bodyNode, path+".body")
	if err != nil {
		return err
	}
	b.Repeat(body, int(times), style)
	return nil
}

// text reads a string scalar.
func (c *compiler) text(n *Node, path string) (string, error) {
	s, ok := n.Text()
	if !ok {
		return "", errorAt(c.file, n, path, ErrCodeShape, "expected a string, got %s", n.describe())
	}
	return s, nil
}

// texts reads nothing, one string, or a list of strings.
func (c *compiler) texts(n *Node, path string) ([]string, error) {
	if n.IsNull() {
		return nil, nil
	}
	if s, ok := n.Text(); ok {
		return []string{s}, nil
	}
	if n.Kind != List {
		return nil, errorAt(c.file, n, path, ErrCodeShape, "expected a string or a list of strings, got %s", n.describe())
	}
	out := make([]string, len(n.Items))
	for i, item := range n.Items {
		s, err := c.text(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// value reads a scalar. Null reads as nil so that the builder reports it.
func (c *compiler) value(n *Node, path string) (any, error) {
	if n.IsNull() {
		return nil, nil
	}
	if n.Kind != Scalar {
		return nil, errorAt(c.file, n, path, ErrCodeShape, "expected a scalar, got %s", n.describe())
	}
	return n.Value, nil
}

func (c *compiler) integer(n *Node, path string) (int64, error) {
	if n != nil && n.Kind == Scalar {
		if i, ok := n.Value.(int64); ok {
			return i, nil
		}
	}
	return 0, errorAt(c.file, n, path, ErrCodeShape, "expected an integer, got %s", n.describe())
}

// direction reads asc/incr or desc/decr.
func (c *compiler) direction(n *Node, path string) (bool, error) {
	s, err := c.text(n, path)
	if err != nil {
		return false, err
	}
	switch s {
	case "asc", "incr":
		return true, nil
	case "desc", "decr":
		return false, nil
	default:
		return false, errorAt(c.file, n, path, ErrCodeShape, "unknown direction %q (want asc or desc)", s)
	}
}

// predicate reads a single-key map such as {between: [25, 35]}.
func (c *compiler) predicate(n *Node, path string) (predicate.Predicate, error) {
	if n.Kind != Map || len(n.Keys) != 1 {
		return nil, errorAt(c.file, n, path, ErrCodeShape, "predicate must be a map with a single key")
	}
	name := n.Keys[0]
	operands, err := scalarList(c.file, n.Fields[name], path+"."+name)
	if err != nil {
		return nil, err
	}
	p, err := predicate.ByName(name, operands...)
	if err != nil {
		return nil, wrapAt(c.file, n, path+"."+name, ErrCodeArgument, err)
	}
	return p, nil
}

func (c *compiler) properties(parent *Node, path string) (*literal.Properties, error) {
	n, ok := parent.Field("properties")
	if !ok {
		return nil, nil
	}
	return decodeProperties(c.file, n, path+".properties")
}

func (c *compiler) onlyFields(n *Node, path string, fields ...string) error {
	for _, key := range n.Keys {
		known := false
		for _, f := range fields {
			if key == f {
				known = true
				break
			}
		}
		if !known {
			return errorAt(c.file, n.Fields[key], path+"."+key, ErrCodeShape, "unknown field %q", key)
		}
	}
	return nil
}
