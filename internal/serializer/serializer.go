// Package serializer renders value.Value trees as compact JSON text.
package serializer

import (
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/mcncl/jsoncore/internal/value"
)

const hexDigits = "0123456789abcdef"

// Option configures a Serializer.
type Option func(*Serializer)

// WithSortedKeys renders object members ordered by key instead of member order.
func WithSortedKeys() Option {
	return func(s *Serializer) {
		s.sortKeys = true
	}
}

// Serializer produces deterministic JSON without insignificant whitespace.
type Serializer struct {
	sortKeys bool
}

// New creates a Serializer.
func New(opts ...Option) *Serializer {
	s := &Serializer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSerializer = New()

// Serialize renders v with the default options.
func Serialize(v value.Value) string {
	return defaultSerializer.Serialize(v)
}

// Append appends the rendering of v with the default options to dst.
func Append(dst []byte, v value.Value) []byte {
	return defaultSerializer.Append(dst, v)
}

// Serialize renders v.
func (s *Serializer) Serialize(v value.Value) string {
	return string(s.Append(make([]byte, 0, 64), v))
}

// Write renders v to w.
func (s *Serializer) Write(w io.Writer, v value.Value) error {
	_, err := w.Write(s.Append(nil, v))
	return err
}

// Append appends the rendering of v to dst and returns the extended slice.
func (s *Serializer) Append(dst []byte, v value.Value) []byte {
	switch v.Kind() {
	case value.KindBool:
		b, _ := v.Bool()
		return strconv.AppendBool(dst, b)
	case value.KindInteger:
		i, _ := v.Int()
		return strconv.AppendInt(dst, i, 10)
	case value.KindFloat:
		f, _ := v.Float()
		return appendFloat(dst, f)
	case value.KindString:
		str, _ := v.Str()
		return appendString(dst, str)
	case value.KindArray:
		items, _ := v.Array()
		dst = append(dst, '[')
		for i, item := range items {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = s.Append(dst, item)
		}
		return append(dst, ']')
	case value.KindObject:
		obj, _ := v.Object()
		members := obj.Members()
		if s.sortKeys {
			members = append([]value.Member(nil), members...)
			sort.Slice(members, func(i, j int) bool {
				return members[i].Key < members[j].Key
			})
		}
		dst = append(dst, '{')
		for i, m := range members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, m.Key)
			dst = append(dst, ':')
			dst = s.Append(dst, m.Value)
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

// appendFloat writes f so that it reads back as a float: the output always carries a
// fraction or an exponent. NaN and infinities have no JSON form and become null.
func appendFloat(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}

	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if format == 'e' {
		// Drop the leading zero of two-digit exponents: 1e-07 becomes 1e-7.
		n := len(dst)
		if n-start >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
		return dst
	}

	for _, c := range dst[start:] {
		if c == '.' {
			return dst
		}
	}
	return append(dst, ".0"...)
}

func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			if c < 0x20 {
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			} else {
				dst = append(dst, c)
			}
		}
	}
	return append(dst, '"')
}
