package literal

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to test a *FormatError against them.
var (
	// ErrUnsupportedType is returned for values outside the Value variant,
	// including nil holes inside arrays and objects.
	ErrUnsupportedType = errors.New("unsupported value type")

	// ErrInvalidFormat is returned for values of a supported type whose
	// content cannot be written as a literal (invalid UTF-8, NaN, ...).
	ErrInvalidFormat = errors.New("invalid format")
)

// FormatError describes a value that cannot be rendered as a literal.
type FormatError struct {
	Err    error  // ErrUnsupportedType or ErrInvalidFormat
	Path   string // location inside the value, e.g. "$.tags[2]"; empty at top level
	Detail string // human-readable description
}

func (e *FormatError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Path != "" && e.Path != rootPath {
		return fmt.Sprintf("literal %s: %s", e.Path, msg)
	}
	return "literal: " + msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
