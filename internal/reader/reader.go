// Package reader implements a strict RFC 8259 recursive-descent JSON parser.
//
// A Reader drives a cursor.Cursor over the complete input and emits grammar events
// into a builder.Builder, which materializes the value.Value tree. Parsing fails fast:
// the first violation aborts the parse and is reported as an *errors.SyntaxError
// carrying the line number and the rest of that line.
package reader

import (
	"strconv"
	"strings"

	"github.com/mcncl/jsoncore/internal/builder"
	"github.com/mcncl/jsoncore/internal/cursor"
	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/value"
)

// DefaultMaxDepth is the array/object nesting limit used when none is configured.
const DefaultMaxDepth = 100

// Option configures a Reader.
type Option func(*Reader)

// WithMaxDepth sets the maximum array/object nesting. Values below zero are treated as zero.
func WithMaxDepth(depth int) Option {
	return func(r *Reader) {
		if depth < 0 {
			depth = 0
		}
		r.maxDepth = depth
	}
}

// Reader parses JSON documents. It holds no per-parse state and is safe for
// concurrent use.
type Reader struct {
	maxDepth int
}

// New creates a Reader with the given options applied over the defaults.
func New(opts ...Option) *Reader {
	r := &Reader{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxDepth returns the configured nesting limit.
func (r *Reader) MaxDepth() int {
	return r.maxDepth
}

var defaultReader = New()

// Parse parses input with the default options.
func Parse(input []byte) (value.Value, error) {
	return defaultReader.Parse(input)
}

// ParseString parses s with the default options.
func ParseString(s string) (value.Value, error) {
	return defaultReader.Parse([]byte(s))
}

// Parse parses exactly one JSON value from input. Only whitespace may surround it.
// On failure the returned value is null and the error is an *errors.SyntaxError.
func (r *Reader) Parse(input []byte) (value.Value, error) {
	in := cursor.New(input)

	var root value.Value
	err := parseValue(in, builder.New(&root, r.maxDepth))
	if err == nil {
		in.SkipWhitespace()
		if in.Next() != cursor.EOF {
			in.Pushback()
			err = errors.ErrTrailingData
		}
	}
	if err != nil {
		line, offset := in.Line(), in.Offset()
		return value.Null(), errors.NewSyntaxError(err, line, offset, in.RestOfLine())
	}

	return root, nil
}

func parseValue(in *cursor.Cursor, b *builder.Builder) error {
	in.SkipWhitespace()

	ch := in.Next()
	switch {
	case ch == 'n':
		if !in.Match("ull") {
			return errors.ErrInvalidLiteral
		}
		b.SetNull()
	case ch == 't':
		if !in.Match("rue") {
			return errors.ErrInvalidLiteral
		}
		b.SetBool(true)
	case ch == 'f':
		if !in.Match("alse") {
			return errors.ErrInvalidLiteral
		}
		b.SetBool(false)
	case ch == '"':
		s, err := parseString(in)
		if err != nil {
			return err
		}
		b.SetString(s)
	case ch == '[':
		return parseArray(in, b)
	case ch == '{':
		return parseObject(in, b)
	case ch == '-' || isDigit(ch):
		in.Pushback()
		return parseNumber(in, b)
	case ch == cursor.EOF:
		return errors.ErrUnexpectedEOF
	default:
		in.Pushback()
		return errors.ErrUnexpectedCharacter
	}

	return nil
}

func parseArray(in *cursor.Cursor, b *builder.Builder) error {
	if err := b.EnterArray(); err != nil {
		return err
	}
	if in.Expect(']') {
		b.LeaveArray()
		return nil
	}

	for {
		if err := parseValue(in, b.AppendArrayItem()); err != nil {
			return err
		}
		if !in.Expect(',') {
			break
		}
	}

	if !in.Expect(']') {
		return errors.ErrUnclosedArray
	}
	b.LeaveArray()
	return nil
}

func parseObject(in *cursor.Cursor, b *builder.Builder) error {
	if err := b.EnterObject(); err != nil {
		return err
	}
	if in.Expect('}') {
		b.LeaveObject()
		return nil
	}

	for {
		if !in.Expect('"') {
			return unexpected(in, errors.ErrUnclosedObject)
		}
		key, err := parseString(in)
		if err != nil {
			return err
		}
		if !in.Expect(':') {
			return unexpected(in, errors.ErrUnclosedObject)
		}
		if err := parseValue(in, b.ObjectItemSlot(key)); err != nil {
			return err
		}
		if !in.Expect(',') {
			break
		}
	}

	if !in.Expect('}') {
		return errors.ErrUnclosedObject
	}
	b.LeaveObject()
	return nil
}

// unexpected picks atEOF when the input ended, ErrUnexpectedCharacter otherwise. The
// last byte read must already have been pushed back.
func unexpected(in *cursor.Cursor, atEOF error) error {
	ch := in.Next()
	in.Pushback()
	if ch == cursor.EOF {
		return atEOF
	}
	return errors.ErrUnexpectedCharacter
}

func parseNumber(in *cursor.Cursor, b *builder.Builder) error {
	var sb strings.Builder

	ch := in.Next()
	if ch == '-' {
		sb.WriteByte('-')
		ch = in.Next()
	}

	switch {
	case ch == '0':
		sb.WriteByte('0')
		ch = in.Next()
		if isDigit(ch) {
			in.Pushback()
			return errors.ErrInvalidNumber
		}
	case isDigit(ch):
		ch = readDigits(in, &sb, ch)
	default:
		in.Pushback()
		return errors.ErrInvalidNumber
	}

	if ch == '.' {
		sb.WriteByte('.')
		ch = in.Next()
		if !isDigit(ch) {
			in.Pushback()
			return errors.ErrInvalidNumber
		}
		ch = readDigits(in, &sb, ch)
	}

	if ch == 'e' || ch == 'E' {
		sb.WriteByte(byte(ch))
		ch = in.Next()
		if ch == '+' || ch == '-' {
			sb.WriteByte(byte(ch))
			ch = in.Next()
		}
		if !isDigit(ch) {
			in.Pushback()
			return errors.ErrInvalidNumber
		}
		ch = readDigits(in, &sb, ch)
	}
	in.Pushback()

	text := sb.String()
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		b.SetInteger(i)
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return errors.ErrInvalidNumber
	}
	b.SetFloat(f)
	return nil
}

// readDigits writes ch and every following digit to sb and returns the first
// non-digit read.
func readDigits(in *cursor.Cursor, sb *strings.Builder, ch int) int {
	for isDigit(ch) {
		sb.WriteByte(byte(ch))
		ch = in.Next()
	}
	return ch
}

func isDigit(ch int) bool {
	return ch >= '0' && ch <= '9'
}
