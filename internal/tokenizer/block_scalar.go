package tokenizer

import (
	"strings"

	"github.com/shapestone/yamlstream/internal/diag"
)

// Chomping indicators of a block scalar header.
const (
	chompClip  = 0
	chompStrip = '-'
	chompKeep  = '+'
)

// blockScalar holds the state of a literal or folded scalar scan.
type blockScalar struct {
	folded    bool
	chomping  byte
	indent    int // column of the content, 0 until detected
	exit      int // lines at or before this column end the scalar
	breaks    int // line breaks seen since the last content
	done      bool
	body      strings.Builder
	hasText   bool
	lastSpace bool // previous content line started with a blank
}

// scanBlockScalar scans a "|" or ">" scalar. The body is decoded during
// the scan since indentation cannot be recovered from the raw range.
func (s *Scanner) scanBlockScalar(isLiteral bool) bool {
	start := s.pos
	s.skip(1) // | or >

	b := &blockScalar{folded: !isLiteral, exit: s.indent}
	indicator, ok := s.scanBlockScalarHeader(b)
	if !ok {
		return false
	}
	if b.done {
		s.push(&Token{Kind: BlockScalar, Range: diag.Range{Start: start, End: s.pos}})
		return true
	}

	if indicator > 0 {
		b.indent = max(b.exit, 0) + indicator
	} else if !s.findBlockScalarIndent(b) {
		return false
	}

	for !b.done {
		if !s.scanBlockScalarIndent(b) {
			return false
		}
		if b.done {
			break
		}

		lineStart := s.pos
		s.advanceWhile(s.skipNbChar)
		if lineStart != s.pos {
			b.appendLine(s.src[lineStart:s.pos])
		}

		if s.pos >= len(s.src) || !s.consumeLineBreak() {
			break
		}
		b.breaks++
	}

	// A scalar running into the end of input ends with an implied break.
	if s.pos >= len(s.src) && b.breaks == 0 {
		b.breaks = 1
	}
	b.body.WriteString(strings.Repeat("\n", b.chompedBreaks()))

	// New lines may start a simple key.
	if s.flowLevel == 0 {
		s.simpleKeyAllowed = true
	}

	s.push(&Token{
		Kind:  BlockScalar,
		Range: diag.Range{Start: start, End: s.pos},
		Value: b.body.String(),
	})
	return true
}

// scanBlockScalarHeader scans the chomping and indentation indicators, in
// either order, up to and including the line break. It returns the
// indentation indicator, or 0 when there is none.
func (s *Scanner) scanBlockScalarHeader(b *blockScalar) (int, bool) {
	b.chomping = s.scanChompingIndicator()
	indicator := 0
	if c := s.at(s.pos); c >= '1' && c <= '9' {
		indicator = int(c - '0')
		s.skip(1)
	}
	if b.chomping == chompClip {
		b.chomping = s.scanChompingIndicator()
	}

	s.advanceWhile(s.skipSWhite)
	s.skipComment()

	if s.pos >= len(s.src) {
		// An empty scalar at the end of input.
		b.done = true
		return indicator, true
	}
	if !s.consumeLineBreak() {
		s.setError("expected a line break after block scalar header", s.pos)
		return 0, false
	}
	return indicator, true
}

func (s *Scanner) scanChompingIndicator() byte {
	if c := s.at(s.pos); c == chompStrip || c == chompKeep {
		s.skip(1)
		return c
	}
	return chompClip
}

// findBlockScalarIndent detects the content indentation from the first
// non-empty line. Leading empty lines count as line breaks of the body.
func (s *Scanner) findBlockScalarIndent(b *blockScalar) bool {
	maxSpaces, longest := 0, 0
	for {
		s.advanceWhile(s.skipSSpace)

		if s.skipNbChar(s.pos) != s.pos {
			if s.column <= b.exit || s.atDocumentMarker() {
				b.done = true
				return true
			}
			b.indent = s.column
			if maxSpaces > b.indent {
				s.setError("leading all-spaces line must be smaller than the block indent", longest)
				return false
			}
			return true
		}
		if s.skipBBreak(s.pos) != s.pos && s.column > maxSpaces {
			maxSpaces, longest = s.column, s.pos
		}

		if s.pos >= len(s.src) || !s.consumeLineBreak() {
			b.done = true
			return true
		}
		b.breaks++
	}
}

// scanBlockScalarIndent skips the indentation of one body line and checks
// whether the line still belongs to the scalar.
func (s *Scanner) scanBlockScalarIndent(b *blockScalar) bool {
	for s.column < b.indent {
		i := s.skipSSpace(s.pos)
		if i == s.pos {
			break
		}
		s.pos = i
		s.column++
	}

	if s.skipNbChar(s.pos) == s.pos {
		// An empty line.
		return true
	}

	if s.column <= b.exit || s.atDocumentMarker() {
		b.done = true
		return true
	}

	if s.column < b.indent {
		switch s.src[s.pos] {
		case '#':
			// A trailing comment ends the scalar.
			b.done = true
			return true
		case '\t':
			s.setError("found a tab character where an indentation space is expected", s.pos)
			return false
		}
		s.setError("a text line is less indented than the block scalar", s.pos)
		return false
	}
	return true
}

func (s *Scanner) atDocumentMarker() bool {
	return s.column == 0 && (s.isDocumentIndicator(s.pos, "---") || s.isDocumentIndicator(s.pos, "..."))
}

// appendLine adds a content line, preceded by the pending line breaks. In
// folded scalars a single break between two lines that do not start with
// a blank becomes a space.
func (b *blockScalar) appendLine(line []byte) {
	space := line[0] == ' ' || line[0] == '\t'
	switch {
	case b.folded && b.hasText && !b.lastSpace && !space:
		if b.breaks == 1 {
			b.body.WriteByte(' ')
		} else {
			b.body.WriteString(strings.Repeat("\n", b.breaks-1))
		}
	default:
		b.body.WriteString(strings.Repeat("\n", b.breaks))
	}
	b.body.Write(line)
	b.breaks = 0
	b.hasText = true
	b.lastSpace = space
}

func (b *blockScalar) chompedBreaks() int {
	switch b.chomping {
	case chompStrip:
		return 0
	case chompKeep:
		return b.breaks
	}
	if !b.hasText {
		return 0
	}
	return 1
}
