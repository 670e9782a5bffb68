package literal

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched (via errors.Is) by every ArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports an argument rejected before any text was rendered.
//
// Argument errors include:
//   - Null value: nil passed where a literal is required
//   - Non-finite number: NaN or infinity has no literal form
//   - Empty identifier: id, label, key or alias is empty
//   - Out of range: negative window bound, non-positive time limit
type ArgumentError struct {
	// Op names the operation that rejected the argument (e.g. "timeLimit").
	Op string

	// Arg names the rejected argument (e.g. "milliseconds").
	Arg string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	switch {
	case e.Op != "" && e.Arg != "":
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Arg, e.Message)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	default:
		return e.Message
	}
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewArgumentError creates an ArgumentError with a formatted message.
func NewArgumentError(op, arg, format string, args ...any) *ArgumentError {
	return &ArgumentError{
		Op:      op,
		Arg:     arg,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsInvalidArgument returns true if err is or wraps an argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
