package script

import (
	"fmt"
	"log/slog"

	"github.com/cwoodland/CuriousGremlin/internal/traversal"
)

// Compiled is one program rendered from a document.
type Compiled struct {
	// Name is the program's name in the document.
	Name string

	// Program is the rendered traversal text.
	Program string

	// Hash is the content hash of Program (traversal.HashProgram).
	Hash string

	// Steps is the number of top-level steps, including the start.
	Steps int

	// Kind is the element kind the program yields.
	Kind traversal.Kind
}

// Compile renders every program in doc, in document order. It stops at the
// first program that fails.
func Compile(doc *Document) ([]Compiled, error) {
	out := make([]Compiled, 0, len(doc.Programs))
	for _, p := range doc.Programs {
		b, err := Build(doc.File, p)
		if err != nil {
			return nil, err
		}
		text, err := b.Program()
		if err != nil {
			return nil, wrapAt(doc.File, p.node, p.path, ErrCodeArgument, err)
		}
		c := Compiled{
			Name:    p.Name,
			Program: text,
			Hash:    traversal.HashProgram(text),
			Steps:   b.Len(),
			Kind:    b.Kind(),
		}
		slog.Debug("program compiled",
			"file", doc.File,
			"name", c.Name,
			"steps", c.Steps,
			"hash", c.Hash,
		)
		out = append(out, c)
	}
	return out, nil
}

// Build constructs the builder for one program. file is used in errors.
func Build(file string, p Program) (*traversal.Builder, error) {
	c := &compiler{file: file}

	var b *traversal.Builder
	switch p.Start {
	case StartVertices:
		b = traversal.Vertices()
		if p.ID != "" {
			b = traversal.Vertex(p.ID)
		}
	case StartEdges:
		b = traversal.Edges()
		if p.ID != "" {
			b = traversal.Edge(p.ID)
		}
	case StartAddVertex:
		b = traversal.AddVertex(p.Label, p.Properties)
	case StartInject:
		b = traversal.Inject(p.Values...)
	case StartAnonymous:
		b = traversal.Anonymous()
	default:
		return nil, errorAt(file, p.node, p.path+".start", ErrCodeShape, "unknown start %q", p.Start)
	}
	if err := b.Err(); err != nil {
		return nil, wrapAt(file, p.node, p.path+".start", ErrCodeArgument, err)
	}

	if err := c.steps(b, p.Steps, p.path+".steps", 0); err != nil {
		return nil, err
	}
	return b, nil
}

type compiler struct {
	file string
}

// steps applies each step node to b. first is the index of items[0] in
// the list at path.
func (c *compiler) steps(b *traversal.Builder, items []*Node, path string, first int) error {
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, first+i)
		op, arg, err := c.split(item, itemPath)
		if err != nil {
			return err
		}
		stepPath := itemPath + "." + op

		fn, ok := stepTable[op]
		if !ok {
			return errorAt(c.file, item, stepPath, ErrCodeUnknownStep, "unknown step %q", op)
		}
		if err := fn(c, b, arg, stepPath); err != nil {
			return err
		}
		if err := b.Err(); err != nil {
			return wrapAt(c.file, item, stepPath, ErrCodeArgument, err)
		}
	}
	return nil
}

// split reads a step node: either a bare step name or a map with exactly
// one key, the step name, whose value is the argument.
func (c *compiler) split(item *Node, path string) (string, *Node, error) {
	if name, ok := item.Text(); ok {
		return name, nil, nil
	}
	if item != nil && item.Kind == Map && len(item.Keys) == 1 {
		op := item.Keys[0]
		return op, item.Fields[op], nil
	}
	return "", nil, errorAt(c.file, item, path, ErrCodeShape,
		"step must be a name or a map with a single key, got %s", item.describe())
}

// branch compiles a sub-traversal. A list whose first item is "__" starts
// an anonymous traversal; any other list continues from b's position.
func (c *compiler) branch(b *traversal.Builder, n *Node, path string) (*traversal.Builder, error) {
	if n.IsNull() || n.Kind != List {
		return nil, errorAt(c.file, n, path, ErrCodeShape, "expected a list of steps, got %s", n.describe())
	}

	items := n.Items
	var sub *traversal.Builder
	if len(items) > 0 {
		if first, ok := items[0].Text(); ok && first == "__" {
			sub = traversal.Anonymous()
			items = items[1:]
		}
	}
	if sub == nil {
		sub = b.CreateSubQuery()
	}

	if err := c.steps(sub, items, path, len(n.Items)-len(items)); err != nil {
		return nil, err
	}
	return sub, nil
}

// branches compiles a list of sub-traversals.
func (c *compiler) branches(b *traversal.Builder, n *Node, path string) ([]*traversal.Builder, error) {
	if n.IsNull() || n.Kind != List {
		return nil, errorAt(c.file, n, path, ErrCodeShape, "expected a list of branches, got %s", n.describe())
	}
	subs := make([]*traversal.Builder, len(n.Items))
	for i, item := range n.Items {
		sub, err := c.branch(b, item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		subs[i] = sub
	}
	return subs, nil
}
