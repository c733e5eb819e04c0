package tokenizer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Scan tokenizes src completely. The result ends with a StreamEnd token, or
// with an Error token when scanning failed.
func Scan(src []byte, opts ...Option) []Token {
	s := NewScanner(src, opts...)
	var toks []Token
	for {
		t := s.Next()
		toks = append(toks, t)
		if t.Kind == StreamEnd || t.Kind == Error {
			return toks
		}
	}
}

// Colors decorates the parts of a dump line. A nil function leaves its
// part unchanged.
type Colors struct {
	Kind  func(a ...any) string
	Value func(a ...any) string
}

func (c Colors) kind(k Kind) string {
	if c.Kind == nil {
		return k.String()
	}
	return c.Kind(k)
}

func (c Colors) value(s string) string {
	if c.Value == nil {
		return s
	}
	return c.Value(s)
}

// FormatToken renders t as one dump line, without a line break: the kind,
// the byte range and the quoted source text. Block scalars also show their
// decoded value.
func FormatToken(t Token, src []byte, c Colors) string {
	line := fmt.Sprintf("%s [%d,%d) %s", c.kind(t.Kind), t.Range.Start, t.Range.End, c.value(strconv.Quote(t.Text(src))))
	if t.Kind == BlockScalar {
		line += " value=" + c.value(strconv.Quote(t.Value))
	}
	return line
}

// Dump writes one FormatToken line per token of src to w. Scanning errors
// are returned after the tokens preceding them are written.
func Dump(w io.Writer, src []byte, opts ...Option) error {
	return DumpColors(w, src, Colors{}, opts...)
}

// DumpColors is Dump with decorated lines.
func DumpColors(w io.Writer, src []byte, c Colors, opts ...Option) error {
	s := NewScanner(src, opts...)
	for {
		t := s.Next()
		if t.Kind == Error {
			return s.Err()
		}
		if _, err := fmt.Fprintln(w, FormatToken(t, s.Source(), c)); err != nil {
			return errors.Wrap(err, "writing token dump")
		}
		if t.Kind == StreamEnd {
			return nil
		}
	}
}

// Validate reports whether src tokenizes without error.
func Validate(src []byte, opts ...Option) bool {
	s := NewScanner(src, opts...)
	for {
		switch s.Next().Kind {
		case Error:
			return false
		case StreamEnd:
			return true
		}
	}
}
