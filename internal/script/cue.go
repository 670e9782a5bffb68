package script

import (
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"golang.org/x/text/unicode/norm"

	"github.com/cwoodland/CuriousGremlin/internal/literal"
)

// LoadCUE reads a CUE traversal document. path may be a single .cue file or
// a directory holding one CUE package.
func LoadCUE(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeParse, File: path, Message: "failed to read document", Err: err}
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &Error{Code: ErrCodeParse, File: path, Message: "failed to read document", Err: err}
		}
		return ParseCUE(path, data)
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: path})
	if len(instances) == 0 {
		return nil, &Error{Code: ErrCodeParse, File: path, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &Error{Code: ErrCodeParse, File: path, Message: fmt.Sprintf("loading CUE files: %v", inst.Err), Err: inst.Err}
	}

	ctx := cuecontext.New()
	return decodeCUE(path, ctx.BuildInstance(inst))
}

// ParseCUE decodes a CUE traversal document. name is used in errors.
func ParseCUE(name string, data []byte) (*Document, error) {
	ctx := cuecontext.New()
	return decodeCUE(name, ctx.CompileBytes(data, cue.Filename(name)))
}

func decodeCUE(name string, v cue.Value) (*Document, error) {
	if err := v.Err(); err != nil {
		return nil, &Error{Code: ErrCodeParse, File: name, Message: fmt.Sprintf("building CUE value: %v", err), Err: err}
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, &Error{Code: ErrCodeParse, File: name, Message: fmt.Sprintf("document is not concrete: %v", err), Err: err}
	}

	n, err := fromCUE(name, v)
	if err != nil {
		return nil, err
	}
	slog.Debug("document parsed", "file", name, "format", "cue")
	return decodeDocument(name, n)
}

func fromCUE(file string, v cue.Value) (*Node, error) {
	pos := cuePos(v)
	fail := func(err error) (*Node, error) {
		return nil, &Error{Code: ErrCodeShape, File: file, Pos: pos, Message: err.Error(), Err: err}
	}

	switch v.Kind() {
	case cue.NullKind:
		return &Node{Kind: Null, Pos: pos}, nil

	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return fail(err)
		}
		return &Node{Kind: Scalar, Value: b, Pos: pos}, nil

	case cue.IntKind:
		if i, err := v.Int64(); err == nil {
			return &Node{Kind: Scalar, Value: i, Pos: pos}, nil
		}
		wide, err := v.Int(nil)
		if err != nil {
			return fail(err)
		}
		d, err := literal.ParseDecimal(wide.String())
		if err != nil {
			return fail(err)
		}
		return &Node{Kind: Scalar, Value: d, Pos: pos}, nil

	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return fail(err)
		}
		return &Node{Kind: Scalar, Value: f, Pos: pos}, nil

	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return fail(err)
		}
		return &Node{Kind: Scalar, Value: norm.NFC.String(s), Pos: pos}, nil

	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return fail(err)
		}
		n := &Node{Kind: List, Pos: pos}
		for iter.Next() {
			child, err := fromCUE(file, iter.Value())
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, child)
		}
		return n, nil

	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return fail(err)
		}
		n := newMap(pos)
		for iter.Next() {
			child, err := fromCUE(file, iter.Value())
			if err != nil {
				return nil, err
			}
			// CUE unifies repeated fields, so keys are already unique.
			n.set(norm.NFC.String(iter.Label()), child)
		}
		return n, nil

	default:
		return fail(fmt.Errorf("unsupported CUE kind %v", v.Kind()))
	}
}

func cuePos(v cue.Value) string {
	p := v.Pos()
	if !p.IsValid() {
		return ""
	}
	return fmt.Sprintf("%d:%d", p.Line(), p.Column())
}
