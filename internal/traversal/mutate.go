package traversal

import (
	"fmt"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
	"github.com/cwoodland/CuriousGremlin/internal/steps"
)

// AddVertex appends a vertex-creating step: .addV('label', 'key', value).
// An empty label is omitted; null property values are skipped.
func (b *Builder) AddVertex(label string, props *literal.Properties) *Builder {
	if !b.ready("addV") {
		return b
	}
	args, err := addVertexArgs(label, props)
	if err != nil {
		return b.fail(err)
	}
	return b.call(KindVertex, "addV", args)
}

// Property sets a property on the current element: .property('key', value).
func (b *Builder) Property(key string, value any) *Builder {
	if !b.ready("property") {
		return b
	}
	if err := requireText("property", "key", key); err != nil {
		return b.fail(err)
	}
	lit, err := literal.Render(value)
	if err != nil {
		return b.fail(fmt.Errorf("property %q: %w", key, err))
	}
	return b.call(kindSame, "property", literal.Quote(key)+", "+lit)
}

// AddEdge creates an edge from the current vertex to the vertex with
// targetID: .addE('label').to(g.V('id')).property('key', value)...
func (b *Builder) AddEdge(label, targetID string, props *literal.Properties) *Builder {
	if !b.ready("addE") {
		return b
	}
	if err := requireText("addE", "target", targetID); err != nil {
		return b.fail(err)
	}
	return b.addEdge(label, "g.V("+literal.Quote(targetID)+")", props)
}

// AddEdgeTo creates an edge from the current vertex to the vertices target
// yields: .addE('label').to(<target>). target moves to Embedded.
func (b *Builder) AddEdgeTo(label string, target *Builder, props *literal.Properties) *Builder {
	if !b.ready("addE") {
		return b
	}
	programs, err := b.embed("addE", target)
	if err != nil {
		return b.fail(err)
	}
	b.addEdge(label, programs[0], props)
	if b.err == nil {
		target.state = Embedded
	}
	return b
}

func (b *Builder) addEdge(label, target string, props *literal.Properties) *Builder {
	if err := requireText("addE", "label", label); err != nil {
		return b.fail(err)
	}
	pairs, err := literal.RenderPairs(props)
	if err != nil {
		return b.fail(fmt.Errorf("addE: %w", err))
	}

	calls := make([]steps.Step, 0, len(pairs)+1)
	calls = append(calls, steps.Call("to", target))
	for _, pair := range pairs {
		calls = append(calls, steps.Call("property", pair))
	}
	return b.append(KindEdge, steps.Chain(steps.Call("addE", literal.Quote(label)), calls...))
}

// Drop removes the current elements from the graph.
func (b *Builder) Drop() *Builder { return b.call(kindSame, "drop") }
