package script

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
)

// decimalTag marks a YAML scalar to be read as an exact decimal:
//
//	- is: !decimal 0.1000000000000000055511151231257827
const decimalTag = "!decimal"

// LoadYAML reads and decodes a YAML traversal document.
func LoadYAML(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeParse, File: path, Message: "failed to read document", Err: err}
	}
	return ParseYAML(path, data)
}

// ParseYAML decodes a YAML traversal document. name is used in errors.
func ParseYAML(name string, data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &Error{Code: ErrCodeParse, File: name, Message: fmt.Sprintf("failed to parse YAML: %v", err), Err: err}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, &Error{Code: ErrCodeParse, File: name, Message: "document is empty"}
	}

	n, err := fromYAML(name, &root)
	if err != nil {
		return nil, err
	}
	slog.Debug("document parsed", "file", name, "format", "yaml")
	return decodeDocument(name, n)
}

func fromYAML(file string, y *yaml.Node) (*Node, error) {
	pos := fmt.Sprintf("%d:%d", y.Line, y.Column)

	switch y.Kind {
	case yaml.DocumentNode:
		return fromYAML(file, y.Content[0])

	case yaml.AliasNode:
		return fromYAML(file, y.Alias)

	case yaml.SequenceNode:
		n := &Node{Kind: List, Items: make([]*Node, 0, len(y.Content)), Pos: pos}
		for _, item := range y.Content {
			child, err := fromYAML(file, item)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, child)
		}
		return n, nil

	case yaml.MappingNode:
		n := newMap(pos)
		for i := 0; i+1 < len(y.Content); i += 2 {
			key, value := y.Content[i], y.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, &Error{Code: ErrCodeShape, File: file, Pos: pos, Message: "map keys must be scalars"}
			}
			if key.ShortTag() == "!!merge" {
				return nil, &Error{Code: ErrCodeShape, File: file, Pos: pos, Message: "merge keys are not supported"}
			}
			child, err := fromYAML(file, value)
			if err != nil {
				return nil, err
			}
			k := norm.NFC.String(key.Value)
			if !n.set(k, child) {
				return nil, &Error{
					Code:    ErrCodeShape,
					File:    file,
					Pos:     fmt.Sprintf("%d:%d", key.Line, key.Column),
					Message: fmt.Sprintf("duplicate key %q", k),
				}
			}
		}
		return n, nil

	case yaml.ScalarNode:
		v, err := yamlScalar(y)
		if err != nil {
			return nil, &Error{Code: ErrCodeShape, File: file, Pos: pos, Message: err.Error(), Err: err}
		}
		if v == nil {
			return &Node{Kind: Null, Pos: pos}, nil
		}
		return &Node{Kind: Scalar, Value: v, Pos: pos}, nil

	default:
		return nil, &Error{Code: ErrCodeShape, File: file, Pos: pos, Message: fmt.Sprintf("unsupported YAML node kind %d", y.Kind)}
	}
}

// yamlScalar resolves a scalar by its tag, so that quoted numbers stay text
// and integers never pass through float64.
func yamlScalar(y *yaml.Node) (any, error) {
	switch tag := y.ShortTag(); tag {
	case "!!null":
		return nil, nil
	case "!!str":
		return norm.NFC.String(y.Value), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := y.Decode(&i); err == nil {
			return i, nil
		}
		// Out of int64 range: keep every digit.
		return literal.ParseDecimal(y.Value)
	case "!!float":
		if isIntegerText(y.Value) {
			// An integer too wide for 64 bits resolves as a float.
			return literal.ParseDecimal(y.Value)
		}
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	case "!!timestamp":
		var t time.Time
		if err := y.Decode(&t); err != nil {
			return nil, err
		}
		return t, nil
	case decimalTag:
		return literal.ParseDecimal(y.Value)
	default:
		return nil, fmt.Errorf("unsupported scalar tag %s", tag)
	}
}

func isIntegerText(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
