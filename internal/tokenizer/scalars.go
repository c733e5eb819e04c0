package tokenizer

import (
	"strings"

	"github.com/shapestone/yamlstream/internal/diag"
)

// scanFlowScalar scans a single- or double-quoted scalar. The token keeps
// the quotes; escapes are interpreted when the value is read.
func (s *Scanner) scanFlowScalar(isDoubleQuoted bool) bool {
	start, line, col := s.pos, s.line, s.column
	quote := s.src[s.pos]
	s.skip(1)

	for {
		if s.pos >= len(s.src) {
			s.setError("expected quote at end of scalar", start)
			return false
		}
		c := s.src[s.pos]
		switch {
		case c == quote && !isDoubleQuoted && s.at(s.pos+1) == '\'':
			// '' is an escaped single quote.
			s.skip(2)
			continue
		case c == quote:
			s.skip(1)
			e := s.push(&Token{Kind: Scalar, Range: diag.Range{Start: start, End: s.pos}})
			s.saveSimpleKeyCandidate(e, line, col, false)
			s.simpleKeyAllowed = false
			return true
		case c == '\\' && isDoubleQuoted:
			s.skip(1)
			if !s.consumeLineBreak() {
				s.advanceChar()
			}
			continue
		}
		if !s.consumeLineBreak() {
			s.advanceChar()
		}
	}
}

// advanceChar advances over one character, whatever it is.
func (s *Scanner) advanceChar() {
	if s.pos >= len(s.src) {
		return
	}
	i := s.skipNbChar(s.pos)
	if i == s.pos {
		i++
	}
	s.pos = i
	s.column++
}

// scanPlainScalar scans an unquoted scalar, possibly spanning several
// lines. The raw text including embedded line breaks becomes the token.
func (s *Scanner) scanPlainScalar() bool {
	start, line, col := s.pos, s.line, s.column
	indent := s.indent + 1
	leadingBlanks := false

	for {
		// Consume a run of non-blank characters.
		for s.pos < len(s.src) && !s.isBlankOrBreak(s.pos) {
			c := s.src[s.pos]
			if c == ':' && s.isBlankOrBreak(s.pos+1) {
				break
			}
			if s.flowLevel > 0 && strings.IndexByte(",:?[]{}", c) >= 0 {
				break
			}
			i := s.skipNbChar(s.pos)
			if i == s.pos {
				break
			}
			s.pos = i
			s.column++
		}

		if s.pos >= len(s.src) || !s.isBlankOrBreak(s.pos) {
			break
		}

		// Look past blanks and line breaks without committing to them.
		tmp, tmpLine, tmpCol := s.pos, s.line, s.column
		leading := leadingBlanks
		for tmp < len(s.src) && s.isBlankOrBreak(tmp) {
			if i := s.skipSWhite(tmp); i != tmp {
				if leading && tmpCol < indent && s.src[tmp] == '\t' {
					s.setError("found invalid tab character in indentation", tmp)
					return false
				}
				tmp = i
				tmpCol++
				continue
			}
			tmp = s.skipBBreak(tmp)
			leading = true
			tmpLine++
			tmpCol = 0
		}

		if tmp >= len(s.src) || s.src[tmp] == '#' {
			break
		}
		if c := s.src[tmp]; (c == ':' && s.isBlankOrBreak(tmp+1)) ||
			(s.flowLevel > 0 && strings.IndexByte(",:?[]{}", c) >= 0) {
			break
		}
		if s.flowLevel == 0 && tmpCol < indent {
			break
		}
		if tmpCol == 0 && (s.isDocumentIndicator(tmp, "---") || s.isDocumentIndicator(tmp, "...")) {
			break
		}
		s.pos, s.line, s.column = tmp, tmpLine, tmpCol
		leadingBlanks = leading
	}

	if s.pos == start {
		s.setError("got empty plain scalar", start)
		return false
	}

	e := s.push(&Token{Kind: Scalar, Range: diag.Range{Start: start, End: s.pos}})

	// Plain scalars can be simple keys.
	s.saveSimpleKeyCandidate(e, line, col, false)
	s.simpleKeyAllowed = false
	return true
}
