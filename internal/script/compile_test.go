package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
	"github.com/cwoodland/CuriousGremlin/internal/predicate"
	"github.com/cwoodland/CuriousGremlin/internal/traversal"
)

// fluentSocial builds the programs of testdata/social.* with the fluent API.
func fluentSocial() map[string]*traversal.Builder {
	base := traversal.Vertices().HasLabel("person")
	base.Choose(
		base.CreateSubQuery().HasPred("age", predicate.GreaterThanOrEqual{Value: 18}),
		base.CreateSubQuery().Values("name"),
		base.CreateSubQuery().Constant("minor"),
	)

	return map[string]*traversal.Builder{
		"age-band": traversal.Vertices().
			HasLabel("person").
			Values("age").
			IsPred(predicate.Between{Lo: 25, Hi: 35}),
		"create-person":   traversal.AddVertex("person", literal.P("name", "O'Brien", "age", nil)),
		"adults-or-minor": base,
		"friends-of-friends": traversal.Vertex("marko").
			Repeat(traversal.Anonymous().Out("knows").SimplePath(), 3, traversal.DoWhile).
			Dedup().
			Values("name").
			Order(true),
		"link": traversal.Vertex("marko").AddEdge("knows", "josh", literal.P("weight", 0.75)),
	}
}

func TestCompileMatchesFluentAPI(t *testing.T) {
	for _, file := range []string{"testdata/social.yaml", "testdata/social.cue"} {
		t.Run(file, func(t *testing.T) {
			doc, err := Load(file)
			require.NoError(t, err)

			compiled, err := Compile(doc)
			require.NoError(t, err)

			want := fluentSocial()
			require.Len(t, compiled, len(want))

			names := make([]string, len(compiled))
			for i, c := range compiled {
				names[i] = c.Name
				b, ok := want[c.Name]
				require.True(t, ok, c.Name)
				require.NoError(t, b.Err())
				assert.Equal(t, b.String(), c.Program, c.Name)
				assert.Equal(t, b.Hash(), c.Hash, c.Name)
				assert.Equal(t, b.Len(), c.Steps, c.Name)
				assert.Equal(t, b.Kind(), c.Kind, c.Name)
			}
			assert.Equal(t, []string{"age-band", "create-person", "adults-or-minor", "friends-of-friends", "link"}, names)
		})
	}
}

func TestCompileEndToEndText(t *testing.T) {
	doc, err := Load("testdata/social.yaml")
	require.NoError(t, err)
	compiled, err := Compile(doc)
	require.NoError(t, err)

	assert.Equal(t, "g.V().has('person').values('age').is(between(25,35))", compiled[0].Program)
	assert.Equal(t, `g.addV('person', 'name', 'O\'Brien')`, compiled[1].Program)
}

func TestCompileSteps(t *testing.T) {
	tests := []struct {
		name  string
		steps string
		want  string
	}{
		{name: "bare step", steps: "[count]", want: "g.V().count()"},
		{name: "has forms", steps: "[{has: email}, {has: [name, marko]}, {has: [person, age, 29]}, {has: [age, {gt: 30}]}]",
			want: "g.V().has('email').has('name','marko').has('person','age',29).has('age',gt(30))"},
		{name: "quoted number stays text", steps: `[{has: [zip, "02134"]}]`, want: "g.V().has('zip','02134')"},
		{name: "labels list", steps: "[{out: [knows, created]}, {in: knows}, both]", want: "g.V().out('knows','created').in('knows').both()"},
		{name: "within", steps: "[{has: [name, {within: [a, b]}]}]", want: "g.V().has('name',within('a','b'))"},
		{name: "where predicate", steps: "[{as: a}, out, {where: {neq: a}}]", want: "g.V().as('a').out().where(neq('a'))"},
		{name: "where traversal", steps: "[{where: [__, {out: knows}]}]", want: "g.V().where(__.out('knows'))"},
		{name: "windows", steps: "[{range: [1, 3]}, {skip: 2}, {limit: 5}, {tail: 1}, {sample: 4}, {coin: 0.5}, barrier]",
			want: "g.V().range(1,3).skip(2).limit(5).tail(1).sample(4).coin(0.5).barrier()"},
		{name: "order by", steps: "[{orderBy: [age, desc]}, {orderBy: name}, {order: decr}]",
			want: "g.V().order().by('age',decr).order().by('name',incr).order().by(decr)"},
		{name: "time limit", steps: "[{timeLimit: 100}]", want: "g.V().timeLimit(100)"},
		{name: "projection", steps: "[{values: [name, age]}, fold, unfold, dedup]", want: "g.V().values('name','age').fold().unfold().dedup()"},
		{name: "select", steps: "[{as: a}, {as: b}, {select: [a, b]}]", want: "g.V().as('a').as('b').select('a','b')"},
		{name: "inject and aggregate", steps: "[{aggregate: x}, {inject: [1, two]}]", want: "g.V().aggregate('x').inject(1,'two')"},
		{name: "property", steps: `[{property: [name, "O'Brien"]}]`, want: `g.V().property('name', 'O\'Brien')`},
		{name: "add vertex step", steps: "[{addV: {label: person, properties: {a: 1, b: null, c: x}}}]", want: "g.V().addV('person', 'a', 1,'c', 'x')"},
		{name: "add edge to traversal", steps: "[{addE: {label: knows, to: [__, {has: [name, josh]}]}}]",
			want: "g.V().addE('knows').to(__.has('name','josh'))"},
		{name: "and or", steps: "[{and: [[{has: a}], [{has: b}]]}, {or: [[__, {has: c}]]}]",
			want: "g.V().and(g.V().has('a'),g.V().has('b')).or(__.has('c'))"},
		{name: "not optional", steps: "[{not: [{has: a}]}, {optional: [__, out]}]",
			want: "g.V().not(g.V().has('a')).optional(__.out())"},
		{name: "union coalesce", steps: "[{union: [[__, out], [__, in]]}, {coalesce: [[__, {values: nick}], [__, {values: name}]]}]",
			want: "g.V().union(__.out(),__.in()).coalesce(__.values('nick'),__.values('name'))"},
		{name: "repeat while-do", steps: "[{repeat: {times: 2, style: while-do, body: [__, out]}}]",
			want: "g.V().times(2).repeat(__.out())"},
		{name: "big integer", steps: "[{is: 123456789012345678901}]", want: "g.V().is(123456789012345678901)"},
		{name: "decimal tag", steps: "[{is: !decimal 0.1000000000000000000001}]", want: "g.V().is(0.1000000000000000000001)"},
		{name: "timestamp", steps: "\n      - is: 2009-06-15T13:45:30Z", want: "g.V().is('2009-06-15T13:45:30')"},
		{name: "nfc", steps: `[{has: [name, "Cafe\u0301"]}]`, want: "g.V().has('name','Caf\u00e9')"},
		{name: "drop", steps: "[{hasId: v1}, drop]", want: "g.V().hasId('v1').drop()"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := ParseYAML("inline.yaml", []byte("programs:\n  - name: p\n    steps: "+tc.steps+"\n"))
			require.NoError(t, err)
			compiled, err := Compile(doc)
			require.NoError(t, err)
			require.Len(t, compiled, 1)
			assert.Equal(t, tc.want, compiled[0].Program)
		})
	}
}

func TestCompileStarts(t *testing.T) {
	tests := []struct {
		name    string
		program string
		want    string
	}{
		{name: "all vertices", program: "{name: p}", want: "g.V()"},
		{name: "vertex", program: "{name: p, start: V, id: v1}", want: "g.V('v1')"},
		{name: "edges", program: "{name: p, start: E}", want: "g.E()"},
		{name: "edge", program: "{name: p, start: E, id: e1}", want: "g.E('e1')"},
		{name: "inject", program: "{name: p, start: inject, values: [1, a]}", want: "g.inject(1,'a')"},
		{name: "anonymous", program: "{name: p, start: anonymous, steps: [out]}", want: "__.out()"},
		{name: "add vertex", program: "{name: p, start: addV, properties: {n: 1}}", want: "g.addV('n', 1)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := ParseYAML("inline.yaml", []byte("programs: ["+tc.program+"]"))
			require.NoError(t, err)
			compiled, err := Compile(doc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, compiled[0].Program)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name     string
		steps    string
		code     ErrorCode
		path     string
		invalid  bool
		contains string
	}{
		{name: "unknown step", steps: "[{fly: away}]", code: ErrCodeUnknownStep, path: "programs[0].steps[0].fly"},
		{name: "two keys", steps: "[{has: a, out: b}]", code: ErrCodeShape, path: "programs[0].steps[0]"},
		{name: "argument on nullary", steps: "[{count: 3}]", code: ErrCodeShape, path: "programs[0].steps[0].count"},
		{name: "negative limit", steps: "[out, {limit: -1}]", code: ErrCodeArgument, path: "programs[0].steps[1].limit",
			invalid: true, contains: "limit: n: must be non-negative, got -1"},
		{name: "zero time limit", steps: "[{timeLimit: 0}]", code: ErrCodeArgument, path: "programs[0].steps[0].timeLimit", invalid: true},
		{name: "limit not integer", steps: "[{limit: ten}]", code: ErrCodeShape, path: "programs[0].steps[0].limit"},
		{name: "null value", steps: "[{is: null}]", code: ErrCodeArgument, path: "programs[0].steps[0].is", invalid: true},
		{name: "unknown predicate", steps: "[{is: {near: 3}}]", code: ErrCodeArgument, path: "programs[0].steps[0].is.near", invalid: true},
		{name: "predicate arity", steps: "[{is: {between: [1]}}]", code: ErrCodeArgument, path: "programs[0].steps[0].is.between", invalid: true},
		{name: "nested failure", steps: "[{not: [__, out, {limit: -2}]}]", code: ErrCodeArgument, path: "programs[0].steps[0].not[2].limit", invalid: true},
		{name: "branch not a list", steps: "[{not: out}]", code: ErrCodeShape, path: "programs[0].steps[0].not"},
		{name: "choose arity", steps: "[{choose: [[out], [in]]}]", code: ErrCodeShape, path: "programs[0].steps[0].choose"},
		{name: "empty union", steps: "[{union: []}]", code: ErrCodeArgument, path: "programs[0].steps[0].union", invalid: true},
		{name: "bad direction", steps: "[{order: sideways}]", code: ErrCodeShape, path: "programs[0].steps[0].order"},
		{name: "bad repeat style", steps: "[{repeat: {times: 1, style: forever, body: [out]}}]", code: ErrCodeShape, path: "programs[0].steps[0].repeat.style"},
		{name: "unknown addE field", steps: "[{addE: {label: x, to: y, weight: 1}}]", code: ErrCodeShape, path: "programs[0].steps[0].addE.weight"},
		{name: "nested property value", steps: "[{addV: {properties: {a: [1]}}}]", code: ErrCodeShape, path: "programs[0].steps[0].addV.properties.a"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := ParseYAML("inline.yaml", []byte("programs:\n  - name: p\n    steps: "+tc.steps+"\n"))
			require.NoError(t, err)

			_, err = Compile(doc)
			require.Error(t, err)

			var se *Error
			require.True(t, errors.As(err, &se), "got %T: %v", err, err)
			assert.Equal(t, tc.code, se.Code, se.Error())
			assert.Equal(t, tc.path, se.Path)
			assert.Equal(t, "inline.yaml", se.File)
			assert.NotEmpty(t, se.Pos)
			assert.Equal(t, tc.invalid, literal.IsInvalidArgument(err), se.Error())
			if tc.contains != "" {
				assert.Contains(t, se.Error(), tc.contains)
			}
		})
	}
}

func TestCompileStopsAtFirstFailure(t *testing.T) {
	doc, err := ParseYAML("inline.yaml", []byte(`
programs:
  - name: good
    steps: [count]
  - name: bad
    steps: [{limit: -1}]
`))
	require.NoError(t, err)

	compiled, err := Compile(doc)
	assert.Nil(t, compiled)
	assert.Equal(t, ErrCodeArgument, CodeOf(err))
}
