package script

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes document errors. Codes share the numbering of the
// command-line tool's error codes.
type ErrorCode string

const (
	ErrCodeParse       ErrorCode = "E201" // Not valid YAML or CUE
	ErrCodeShape       ErrorCode = "E202" // Unexpected structure or field
	ErrCodeUnknownStep ErrorCode = "E203" // Step name not recognized
	ErrCodeArgument    ErrorCode = "E204" // Argument rejected by the builder
	ErrCodeDuplicate   ErrorCode = "E205" // Program name used twice
)

// Error reports a problem in a traversal document.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// File is the document the error was found in.
	File string

	// Pos is "line:column" within File, when known.
	Pos string

	// Path locates the offending node, e.g. programs[0].steps[2].is.
	Path string

	// Message is a human-readable description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.File)
	if e.Pos != "" {
		b.WriteString(":")
		b.WriteString(e.Pos)
	}
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	fmt.Fprintf(&b, ": %s: %s", e.Code, e.Message)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// CodeOf returns the code of the first script Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// errorAt builds an Error located at n.
func errorAt(file string, n *Node, path string, code ErrorCode, format string, args ...any) *Error {
	e := &Error{
		Code:    code,
		File:    file,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
	if n != nil {
		e.Pos = n.Pos
	}
	return e
}

// wrapAt wraps err as an Error located at n.
func wrapAt(file string, n *Node, path string, code ErrorCode, err error) *Error {
	e := errorAt(file, n, path, code, "%v", err)
	e.Err = err
	return e
}
