package qerr

import (
	"errors"
	"fmt"
)

// Code categorizes translation errors.
type Code string

const (
	// CodeSchemaMismatch indicates a path segment has no metadata entry under its parent type.
	CodeSchemaMismatch Code = "SCHEMA_MISMATCH"

	// CodeInvalidPath indicates malformed path syntax.
	CodeInvalidPath Code = "INVALID_PATH"

	// CodeUnresolvedPath indicates a constraint or projection path that is absent from the tree.
	CodeUnresolvedPath Code = "UNRESOLVED_PATH"

	// CodeUnsupportedOperator indicates an operator without a rendering template.
	CodeUnsupportedOperator Code = "UNSUPPORTED_OPERATOR"

	// CodeLiteralFormat indicates a value that must be numeric but is not.
	CodeLiteralFormat Code = "LITERAL_FORMAT"

	// CodeInvalidLogic indicates a malformed constraint logic expression.
	CodeInvalidLogic Code = "INVALID_LOGIC"

	// CodeMissingConfiguration indicates configuration required by a constraint is not set.
	CodeMissingConfiguration Code = "MISSING_CONFIGURATION"

	// CodeInvalidQuery indicates a path query document that cannot be decoded.
	CodeInvalidQuery Code = "INVALID_QUERY"
)

// Sentinels for errors.Is. Every *Error unwraps to the sentinel of its code.
var (
	ErrSchemaMismatch       = errors.New("schema mismatch")
	ErrInvalidPath          = errors.New("invalid path")
	ErrUnresolvedPath       = errors.New("unresolved path")
	ErrUnsupportedOperator  = errors.New("unsupported operator")
	ErrLiteralFormat        = errors.New("literal format error")
	ErrInvalidLogic         = errors.New("invalid logic expression")
	ErrMissingConfiguration = errors.New("missing configuration")
	ErrInvalidQuery         = errors.New("invalid path query")
)

var sentinels = map[Code]error{
	CodeSchemaMismatch:       ErrSchemaMismatch,
	CodeInvalidPath:          ErrInvalidPath,
	CodeUnresolvedPath:       ErrUnresolvedPath,
	CodeUnsupportedOperator:  ErrUnsupportedOperator,
	CodeLiteralFormat:        ErrLiteralFormat,
	CodeInvalidLogic:         ErrInvalidLogic,
	CodeMissingConfiguration: ErrMissingConfiguration,
	CodeInvalidQuery:         ErrInvalidQuery,
}

// Error is returned by every stage of the translation pipeline.
//
// Path and Value carry the offending input so callers can surface it
// without parsing the message.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Path is the dotted path involved, if any.
	Path string

	// Value is the offending literal or operator, if any.
	Value string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Value != "":
		return fmt.Sprintf("%s: %s (path=%s, value=%q)", e.Code, e.Message, e.Path, e.Value)
	case e.Path != "":
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	case e.Value != "":
		return fmt.Sprintf("%s: %s (value=%q)", e.Code, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the sentinel matching the error code.
func (e *Error) Unwrap() error {
	return sentinels[e.Code]
}

// New creates an error with a formatted message.
func New(code Code, path string, format string, args ...any) *Error {
	return &Error{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

// WithValue returns a copy of e carrying the offending value.
func (e *Error) WithValue(v string) *Error {
	c := *e
	c.Value = v
	return &c
}

// At returns a copy of e attributed to path.
func (e *Error) At(path string) *Error {
	c := *e
	c.Path = path
	return &c
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) Code {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code
	}
	return ""
}

// IsFatal reports whether err must abort the current translation.
// Unsupported operators are recoverable; everything else is not.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) != CodeUnsupportedOperator
}
