package traversal

import (
	"fmt"
	"strings"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
	"github.com/cwoodland/CuriousGremlin/internal/steps"
)

// Vertex starts a traversal at the vertex with the given id: g.V('id').
func Vertex(id string) *Builder {
	if err := requireText("V", "id", id); err != nil {
		return failedBuilder(err)
	}
	return newBuilder(KindVertex, steps.Source("V", "g.V("+literal.Quote(id)+")"))
}

// Vertices starts a traversal over all vertices: g.V().
func Vertices() *Builder {
	return newBuilder(KindVertex, steps.Source("V", "g.V()"))
}

// Edge starts a traversal at the edge with the given id: g.E('id').
func Edge(id string) *Builder {
	if err := requireText("E", "id", id); err != nil {
		return failedBuilder(err)
	}
	return newBuilder(KindEdge, steps.Source("E", "g.E("+literal.Quote(id)+")"))
}

// Edges starts a traversal over all edges: g.E().
func Edges() *Builder {
	return newBuilder(KindEdge, steps.Source("E", "g.E()"))
}

// Anonymous starts an anonymous traversal (__) that an engine evaluates
// relative to the position of the step embedding it.
func Anonymous() *Builder {
	return newBuilder(KindUnknown, steps.Source("__", "__"))
}

// Inject starts a traversal from literal values: g.inject(v1,v2,...).
func Inject(values ...any) *Builder {
	args, err := renderAll("inject", values)
	if err != nil {
		return failedBuilder(err)
	}
	return newBuilder(KindValue, steps.Source("inject", "g.inject("+strings.Join(args, ",")+")"))
}

// AddVertex starts a traversal that creates a vertex:
// g.addV('label', 'key', value,...). An empty label is omitted; null
// property values are skipped.
func AddVertex(label string, props *literal.Properties) *Builder {
	args, err := addVertexArgs(label, props)
	if err != nil {
		return failedBuilder(err)
	}
	return newBuilder(KindVertex, steps.Source("addV", "g.addV("+args+")"))
}

// VertexObject is a value that can be stored as a vertex. Its properties
// are taken from its JSON encoding.
type VertexObject interface {
	VertexLabel() string
}

// AddVertexObject starts a traversal that creates a vertex from obj.
func AddVertexObject(obj VertexObject) *Builder {
	if literal.IsNull(obj) {
		return failedBuilder(literal.NewArgumentError("addV", "object", "must not be null"))
	}
	props, err := literal.PropertiesOf(obj)
	if err != nil {
		return failedBuilder(err)
	}
	return AddVertex(obj.VertexLabel(), props)
}

// addVertexArgs renders the argument list of addV.
func addVertexArgs(label string, props *literal.Properties) (string, error) {
	rendered, err := literal.RenderProperties(props)
	if err != nil {
		return "", fmt.Errorf("addV: %w", err)
	}

	var args string
	if label != "" {
		args = literal.Quote(label)
	}
	if rendered != "" {
		if args != "" {
			args += ", "
		}
		args += rendered
	}
	return args, nil
}
