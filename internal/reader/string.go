package reader

import (
	"strings"

	"github.com/mcncl/jsoncore/internal/cursor"
	"github.com/mcncl/jsoncore/internal/errors"
)

const (
	highSurrogateMin = 0xD800
	highSurrogateMax = 0xDBFF
	lowSurrogateMin  = 0xDC00
	lowSurrogateMax  = 0xDFFF
)

// parseString reads the body of a string whose opening quote was consumed and
// returns it escape-decoded. Bytes >= 0x80 are copied unchanged.
func parseString(in *cursor.Cursor) (string, error) {
	var sb strings.Builder

	for {
		ch := in.Next()
		switch {
		case ch == cursor.EOF:
			return "", errors.ErrUnterminatedString
		case ch == '"':
			return sb.String(), nil
		case ch < 0x20:
			in.Pushback()
			return "", errors.ErrControlCharacter
		case ch == '\\':
			if err := parseEscape(in, &sb); err != nil {
				return "", err
			}
		default:
			sb.WriteByte(byte(ch))
		}
	}
}

func parseEscape(in *cursor.Cursor, sb *strings.Builder) error {
	ch := in.Next()
	switch ch {
	case '"', '\\', '/':
		sb.WriteByte(byte(ch))
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		return parseCodePoint(in, sb)
	case cursor.EOF:
		return errors.ErrUnterminatedString
	default:
		in.Pushback()
		return errors.ErrInvalidEscape
	}
	return nil
}

// parseCodePoint decodes the hex digits of a \u escape, joining a high surrogate with
// the \u escape that must follow it, and writes the code point as UTF-8.
func parseCodePoint(in *cursor.Cursor, sb *strings.Builder) error {
	cp, err := parseQuadHex(in)
	if err != nil {
		return err
	}

	if cp >= lowSurrogateMin && cp <= lowSurrogateMax {
		return errors.ErrInvalidSurrogate
	}

	if cp >= highSurrogateMin && cp <= highSurrogateMax {
		if in.Next() != '\\' {
			in.Pushback()
			return errors.ErrInvalidSurrogate
		}
		if in.Next() != 'u' {
			in.Pushback()
			return errors.ErrInvalidSurrogate
		}
		lo, err := parseQuadHex(in)
		if err != nil || lo < lowSurrogateMin || lo > lowSurrogateMax {
			return errors.ErrInvalidSurrogate
		}
		cp = 0x10000 + ((cp - highSurrogateMin) << 10) + (lo - lowSurrogateMin)
	}

	sb.WriteRune(cp)
	return nil
}

func parseQuadHex(in *cursor.Cursor) (rune, error) {
	var cp rune
	for i := 0; i < 4; i++ {
		ch := in.Next()
		d := hexValue(ch)
		if d < 0 {
			in.Pushback()
			return 0, errors.ErrInvalidEscape
		}
		cp = cp<<4 | rune(d)
	}
	return cp, nil
}

func hexValue(ch int) int {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10
	default:
		return -1
	}
}
