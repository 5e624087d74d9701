package errors

import (
	"errors"
	"fmt"
)

// Syntax error reasons. A failed parse returns a *SyntaxError wrapping exactly one of these.
var (
	ErrUnexpectedEOF       = errors.New("unexpected end of input")
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrInvalidLiteral      = errors.New("invalid literal")
	ErrInvalidNumber       = errors.New("invalid number")
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrControlCharacter    = errors.New("control character in string")
	ErrInvalidEscape       = errors.New("invalid escape sequence")
	ErrInvalidSurrogate    = errors.New("invalid surrogate pair")
	ErrUnclosedArray       = errors.New("unclosed array")
	ErrUnclosedObject      = errors.New("unclosed object")
	ErrMaxDepth            = errors.New("max nesting depth exceeded")
	ErrTrailingData        = errors.New("unexpected data after top-level value")
)

// SyntaxError reports where a parse stopped. Near holds the rest of the offending
// line with control characters removed.
type SyntaxError struct {
	Message string
	Line    int
	Offset  int
	Near    string
	Err     error
}

// NewSyntaxError builds a SyntaxError whose Message is taken from reason.
func NewSyntaxError(reason error, line, offset int, near string) *SyntaxError {
	msg := ""
	if reason != nil {
		msg = reason.Error()
	}
	return &SyntaxError{
		Message: msg,
		Line:    line,
		Offset:  offset,
		Near:    near,
		Err:     reason,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d near: %s", e.Line, e.Near)
}

// Unwrap returns the reason sentinel.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}
