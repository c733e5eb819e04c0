package parser

import (
	"bytes"
	"unicode/utf8"

	"github.com/shapestone/yamlstream/internal/diag"
	"github.com/shapestone/yamlstream/internal/encoding"
)

// Scalar is a plain, single-quoted or double-quoted scalar. It keeps the
// raw source text; quotes and escapes are interpreted on access.
type Scalar Node

// Node returns s as a plain Node.
func (s Scalar) Node() Node { return Node(s) }

// Raw returns the scalar as written, including any quotes.
func (s Scalar) Raw() string {
	r := s.n.text
	return string(s.n.doc.stream.Source()[r.Start:r.End])
}

// IsQuoted reports whether the scalar was written in quotes.
func (s Scalar) IsQuoted() bool {
	src := s.n.doc.stream.Source()
	r := s.n.text
	return r.Len() > 0 && (src[r.Start] == '"' || src[r.Start] == '\'')
}

// Value returns the interpreted value. An invalid escape sequence latches
// an error on the stream.
func (s Scalar) Value() string {
	raw := s.rawBytes()
	if len(raw) > 0 && (raw[0] == '"' || raw[0] == '\'') || !utf8.Valid(raw) {
		return string(s.AppendValue(nil))
	}
	return string(trimTrailingSpace(raw))
}

// AppendValue appends the interpreted value to dst and returns the
// extended buffer. Ill-formed UTF-8 is replaced with U+FFFD.
func (s Scalar) AppendValue(dst []byte) []byte {
	raw := s.rawBytes()
	start := len(dst)
	switch {
	case len(raw) >= 2 && raw[0] == '"':
		var off int
		var msg string
		dst, off, msg = appendDoubleQuoted(dst, raw[1:len(raw)-1])
		if msg != "" {
			at := s.n.text.Start + 1 + off
			s.n.doc.stream.scanner.SetError(msg, diag.Range{Start: at, End: at + 1})
		}
	case len(raw) >= 2 && raw[0] == '\'':
		dst = appendSingleQuoted(dst, raw[1:len(raw)-1])
	default:
		dst = append(dst, trimTrailingSpace(raw)...)
	}
	if !utf8.Valid(dst[start:]) {
		fixed := bytes.ToValidUTF8(dst[start:], []byte(string(encoding.ReplacementChar)))
		dst = append(dst[:start], fixed...)
	}
	return dst
}

func (s Scalar) rawBytes() []byte {
	r := s.n.text
	return s.n.doc.stream.Source()[r.Start:r.End]
}

func trimTrailingSpace(b []byte) []byte {
	return bytes.TrimRight(b, " \t\r\n")
}

// appendSingleQuoted appends the body of a single-quoted scalar, where the
// only escape is a doubled quote.
func appendSingleQuoted(dst, body []byte) []byte {
	for i := 0; i < len(body); i++ {
		switch c := body[i]; c {
		case '\'':
			dst = append(dst, '\'')
			if i+1 < len(body) && body[i+1] == '\'' {
				i++
			}
		case '\r':
			dst = append(dst, '\n')
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

var namedEscapes = map[byte]string{
	'0':  "\x00",
	'a':  "\a",
	'b':  "\b",
	't':  "\t",
	'\t': "\t",
	'n':  "\n",
	'v':  "\v",
	'f':  "\f",
	'r':  "\r",
	'e':  "\x1b",
	' ':  " ",
	'"':  "\"",
	'/':  "/",
	'\\': "\\",
	'N':  "\u0085",
	'_':  "\u00a0",
	'L':  "\u2028",
	'P':  "\u2029",
}

var hexEscapeLen = map[byte]int{'x': 2, 'u': 4, 'U': 8}

// appendDoubleQuoted appends the unescaped body of a double-quoted scalar.
// On an invalid escape it stops and returns the offset in body and a
// message.
func appendDoubleQuoted(dst, body []byte) ([]byte, int, string) {
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '\r', '\n':
			dst = append(dst, '\n')
			if c == '\r' && i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
			continue
		case '\\':
		default:
			dst = append(dst, c)
			continue
		}

		esc := i
		i++
		if i >= len(body) {
			return dst, esc, "unrecognized escape code"
		}
		c = body[i]
		if c == '\r' || c == '\n' {
			// An escaped line break joins the lines without a space.
			if c == '\r' && i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
			for i+1 < len(body) && (body[i+1] == ' ' || body[i+1] == '\t') {
				i++
			}
			continue
		}
		if s, ok := namedEscapes[c]; ok {
			dst = append(dst, s...)
			continue
		}
		n, ok := hexEscapeLen[c]
		if !ok {
			return dst, esc, "unrecognized escape code"
		}
		if i+n >= len(body) {
			return dst, esc, "escape sequence is missing hexadecimal digits"
		}
		var r rune
		for _, h := range body[i+1 : i+1+n] {
			v, ok := hexValue(h)
			if !ok {
				return dst, esc, "invalid hexadecimal digit in escape sequence"
			}
			r = r<<4 | rune(v)
		}
		// Values outside the Unicode range become U+FFFD.
		dst = utf8.AppendRune(dst, r)
		i += n
	}
	return dst, 0, ""
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
