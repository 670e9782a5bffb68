package script

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
)

// Start values naming a program's entry point.
const (
	StartVertices  = "V"
	StartEdges     = "E"
	StartAddVertex = "addV"
	StartInject    = "inject"
	StartAnonymous = "anonymous"
)

// Document is a decoded traversal document.
type Document struct {
	// File is the path or name the document was read from.
	File string

	// Programs in document order.
	Programs []Program
}

// Program describes one traversal: where it starts and the steps that
// follow.
type Program struct {
	Name  string
	Start string

	// ID selects a single vertex or edge for the V and E starts.
	ID string

	// Label and Properties describe the vertex created by the addV start.
	Label      string
	Properties *literal.Properties

	// Values seed the inject start.
	Values []any

	// Steps are the undecoded step nodes, compiled by Compile.
	Steps []*Node

	path string
	node *Node
}

// Load reads a document, choosing the format by file extension. Directories
// are read as CUE packages.
func Load(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".cue", "":
		return LoadCUE(path)
	default:
		return nil, &Error{Code: ErrCodeParse, File: path, Message: fmt.Sprintf("unsupported document type %q", filepath.Ext(path))}
	}
}

var programFields = map[string]bool{
	"name": true, "start": true, "id": true, "label": true,
	"properties": true, "values": true, "steps": true,
}

// decodeDocument validates the document skeleton. Steps are left as nodes;
// their arguments are checked when compiled.
func decodeDocument(file string, root *Node) (*Document, error) {
	if root.Kind != Map {
		return nil, errorAt(file, root, "", ErrCodeShape, "document must be a map, got %s", root.describe())
	}
	for _, key := range root.Keys {
		if key != "programs" {
			return nil, errorAt(file, root.Fields[key], key, ErrCodeShape, "unknown field %q", key)
		}
	}

	list, ok := root.Field("programs")
	if !ok || list.Kind != List || len(list.Items) == 0 {
		return nil, errorAt(file, root, "programs", ErrCodeShape, "programs list is required and must be non-empty")
	}

	doc := &Document{File: file, Programs: make([]Program, 0, len(list.Items))}
	seen := make(map[string]string, len(list.Items))
	for i, item := range list.Items {
		path := fmt.Sprintf("programs[%d]", i)
		p, err := decodeProgram(file, item, path)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[p.Name]; dup {
			return nil, errorAt(file, item, path+".name", ErrCodeDuplicate, "program %q already defined at %s", p.Name, first)
		}
		seen[p.Name] = path
		doc.Programs = append(doc.Programs, p)
	}
	return doc, nil
}

func decodeProgram(file string, n *Node, path string) (Program, error) {
	p := Program{path: path, node: n}
	if n.Kind != Map {
		return p, errorAt(file, n, path, ErrCodeShape, "program must be a map, got %s", n.describe())
	}
	for _, key := range n.Keys {
		if !programFields[key] {
			return p, errorAt(file, n.Fields[key], path+"."+key, ErrCodeShape, "unknown field %q", key)
		}
	}

	text := func(key string) (string, error) {
		v, ok := n.Field(key)
		if !ok || v.IsNull() {
			return "", nil
		}
		s, ok := v.Text()
		if !ok {
			return "", errorAt(file, v, path+"."+key, ErrCodeShape, "%s must be a string, got %s", key, v.describe())
		}
		return s, nil
	}

	var err error
	if p.Name, err = text("name"); err != nil {
		return p, err
	}
	if p.Name == "" {
		return p, errorAt(file, n, path+".name", ErrCodeShape, "name is required")
	}
	if p.Start, err = text("start"); err != nil {
		return p, err
	}
	if p.Start == "" {
		p.Start = StartVertices
	}
	if p.ID, err = text("id"); err != nil {
		return p, err
	}
	if p.Label, err = text("label"); err != nil {
		return p, err
	}

	if props, ok := n.Field("properties"); ok {
		if p.Properties, err = decodeProperties(file, props, path+".properties"); err != nil {
			return p, err
		}
	}
	if values, ok := n.Field("values"); ok {
		if p.Values, err = scalarList(file, values, path+".values"); err != nil {
			return p, err
		}
	}
	if steps, ok := n.Field("steps"); ok && !steps.IsNull() {
		if steps.Kind != List {
			return p, errorAt(file, steps, path+".steps", ErrCodeShape, "steps must be a list, got %s", steps.describe())
		}
		p.Steps = steps.Items
	}

	return p, checkStart(file, n, path, p)
}

// checkStart rejects fields that the chosen start does not use.
func checkStart(file string, n *Node, path string, p Program) error {
	unused := func(field string, set bool) error {
		if set {
			return errorAt(file, n.Fields[field], path+"."+field, ErrCodeShape, "%s is not used by start %q", field, p.Start)
		}
		return nil
	}

	var allowed map[string]bool
	switch p.Start {
	case StartVertices, StartEdges:
		allowed = map[string]bool{"id": true}
	case StartAddVertex:
		allowed = map[string]bool{"label": true, "properties": true}
	case StartInject:
		allowed = map[string]bool{"values": true}
	case StartAnonymous:
		allowed = map[string]bool{}
	default:
		return errorAt(file, n.Fields["start"], path+".start", ErrCodeShape,
			"unknown start %q (want V, E, addV, inject or anonymous)", p.Start)
	}

	fields := []struct {
		name string
		set  bool
	}{
		{"id", p.ID != ""},
		{"label", p.Label != ""},
		{"properties", p.Properties.Len() > 0},
		{"values", len(p.Values) > 0},
	}
	for _, f := range fields {
		if !allowed[f.name] {
			if err := unused(f.name, f.set); err != nil {
				return err
			}
		}
	}
	return nil
}

// decodeProperties reads a map of scalar values, keeping key order.
func decodeProperties(file string, n *Node, path string) (*literal.Properties, error) {
	props := literal.NewProperties()
	if n.IsNull() {
		return props, nil
	}
	if n.Kind != Map {
		return nil, errorAt(file, n, path, ErrCodeShape, "properties must be a map, got %s", n.describe())
	}
	for _, key := range n.Keys {
		v := n.Fields[key]
		switch v.Kind {
		case Null:
			props.Set(key, nil)
		case Scalar:
			props.Set(key, v.Value)
		default:
			return nil, errorAt(file, v, path+"."+key, ErrCodeShape, "property values must be scalars, got %s", v.describe())
		}
	}
	return props, nil
}

// scalarList reads a scalar or a list of scalars. Nulls are kept so that
// the builder can reject them with its own message.
func scalarList(file string, n *Node, path string) ([]any, error) {
	if n.IsNull() {
		return nil, nil
	}
	switch n.Kind {
	case Scalar:
		return []any{n.Value}, nil
	case List:
		out := make([]any, len(n.Items))
		for i, item := range n.Items {
			switch item.Kind {
			case Scalar:
				out[i] = item.Value
			case Null:
				out[i] = nil
			default:
				return nil, errorAt(file, item, fmt.Sprintf("%s[%d]", path, i), ErrCodeShape, "expected a scalar, got %s", item.describe())
			}
		}
		return out, nil
	default:
		return nil, errorAt(file, n, path, ErrCodeShape, "expected a scalar or a list, got %s", n.describe())
	}
}
