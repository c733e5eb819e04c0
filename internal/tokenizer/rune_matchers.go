package tokenizer

import (
	"strings"

	"github.com/shapestone/yamlstream/internal/encoding"
)

// Character-class helpers. Each skipX function returns the offset after a
// match at i, or i itself when there is none. Offsets at or past the end
// of input never match.

func (s *Scanner) at(i int) byte {
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

// skipNbChar matches a printable non-break character. An ill-formed UTF-8
// sequence matches as a single byte; it is replaced when the value is read.
func (s *Scanner) skipNbChar(i int) int {
	if i >= len(s.src) {
		return i
	}
	c := s.src[i]
	if c == '\t' || (c >= 0x20 && c <= 0x7E) {
		return i + 1
	}
	if c < 0x80 {
		return i
	}
	r, n := encoding.DecodeRune(s.src[i:])
	if n == 0 {
		return i + 1
	}
	if isPrintable(r) {
		return i + n
	}
	return i
}

func isPrintable(r rune) bool {
	return r != 0xFEFF && (r == 0x85 ||
		(r >= 0xA0 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF))
}

// skipBBreak matches "\r\n", "\r" or "\n".
func (s *Scanner) skipBBreak(i int) int {
	switch s.at(i) {
	case '\r':
		if s.at(i+1) == '\n' {
			return i + 2
		}
		return i + 1
	case '\n':
		return i + 1
	}
	return i
}

// skipSWhite matches a space or a tab.
func (s *Scanner) skipSWhite(i int) int {
	if c := s.at(i); c == ' ' || c == '\t' {
		return i + 1
	}
	return i
}

// skipSSpace matches a space.
func (s *Scanner) skipSSpace(i int) int {
	if s.at(i) == ' ' {
		return i + 1
	}
	return i
}

// skipNsChar matches a printable character that is not blank.
func (s *Scanner) skipNsChar(i int) int {
	if c := s.at(i); c == ' ' || c == '\t' {
		return i
	}
	return s.skipNbChar(i)
}

// isBlankOrBreak reports whether i is a blank, a line break, or the end of
// input.
func (s *Scanner) isBlankOrBreak(i int) bool {
	if i >= len(s.src) {
		return true
	}
	switch s.src[i] {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func (s *Scanner) isDocumentIndicator(i int, marker string) bool {
	return i+3 <= len(s.src) && string(s.src[i:i+3]) == marker && s.isBlankOrBreak(i+3)
}

// isPlainScalarStart reports whether a plain scalar may begin at i.
func (s *Scanner) isPlainScalarStart(i int) bool {
	if s.isBlankOrBreak(i) || s.skipNbChar(i) == i {
		return false
	}
	c := s.src[i]
	if !strings.ContainsRune("-?:,[]{}#&*!|>'\"%@`", rune(c)) {
		return true
	}
	// "-", "?" and ":" start a plain scalar when followed by a safe
	// character, e.g. "-1" or ":x".
	switch c {
	case '-':
		return !s.isBlankOrBreak(i + 1)
	case '?', ':':
		return s.flowLevel == 0 && !s.isBlankOrBreak(i+1)
	}
	return false
}

// advanceWhile advances the cursor, one character per column, while skip
// matches.
func (s *Scanner) advanceWhile(skip func(int) int) {
	for {
		i := skip(s.pos)
		if i == s.pos {
			return
		}
		s.pos = i
		s.column++
	}
}

// skip advances over n ASCII characters on the current line.
func (s *Scanner) skip(n int) {
	s.pos += n
	s.column += n
}

func (s *Scanner) consumeLineBreak() bool {
	i := s.skipBBreak(s.pos)
	if i == s.pos {
		return false
	}
	s.pos = i
	s.line++
	s.column = 0
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isWordChar(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-'
}
