package script

import "fmt"

// Kind is the shape of a document node.
type Kind int

const (
	Null Kind = iota
	Scalar
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a format-neutral document tree. Both the YAML and the CUE front
// ends produce it, so compilation never sees the source format.
//
// Map keys keep document order. Scalar values are one of string, bool,
// int64, float64, literal.Decimal or time.Time; strings are NFC-normalized.
type Node struct {
	Kind   Kind
	Value  any
	Items  []*Node
	Keys   []string
	Fields map[string]*Node

	// Pos is "line:column" in the source document, when known.
	Pos string
}

// Field returns the value stored under key in a map node.
func (n *Node) Field(key string) (*Node, bool) {
	if n == nil || n.Kind != Map {
		return nil, false
	}
	v, ok := n.Fields[key]
	return v, ok
}

// IsNull reports whether n is absent or an explicit null.
func (n *Node) IsNull() bool {
	return n == nil || n.Kind == Null
}

// Text returns the node's string value.
func (n *Node) Text() (string, bool) {
	if n == nil || n.Kind != Scalar {
		return "", false
	}
	s, ok := n.Value.(string)
	return s, ok
}

// describe names the node's shape for error messages.
func (n *Node) describe() string {
	if n == nil {
		return "nothing"
	}
	if n.Kind == Scalar {
		return fmt.Sprintf("%T", n.Value)
	}
	return n.Kind.String()
}

// newMap returns an empty map node.
func newMap(pos string) *Node {
	return &Node{Kind: Map, Fields: make(map[string]*Node), Pos: pos}
}

// set adds key to a map node. It reports false if key is already present.
func (n *Node) set(key string, v *Node) bool {
	if _, exists := n.Fields[key]; exists {
		return false
	}
	n.Keys = append(n.Keys, key)
	n.Fields[key] = v
	return true
}
