/*
Package bespon is the lexical foundation of the BespON human-writable
structured-data format.

Consists of subpackages:
  - pattern: Unicode character-class fragments (identifier classes, invalid
    literal classes, right-to-left and private-use classes) in regexp source
    syntax;
  - grammar: builds the literal-value and regex-source grammar tables from
    ordered atom sequences, and holds the short backslash-escape tables;
  - escape: converts between literal text (or raw bytes) and the format's
    backslash-escape notation, in both directions.

Typical usage is:

1. Call grammar.New once during program initialization and keep the result;
the tables are immutable afterward and safe for concurrent reads.

2. Feed the regex-source table to a tokenizer, and construct escape.Escaper
and escape.Unescaper instances from the same grammar for rendering and
extracting quoted scalars.

This package only establishes the literal/escaped-text boundary: it does not
tokenize documents, build syntax trees, or convert values.
*/
package bespon

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors = 1   // used by grammar
	EscapeErrors  = 101 // used by escape
)

// Error is the coded error type used by bespon subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message.
	Message string
}

// NewError creates new Error structure.
func NewError(code int, msg string) *Error {
	return &Error{code, msg}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg)
}
