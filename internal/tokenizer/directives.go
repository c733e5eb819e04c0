package tokenizer

import (
	"strings"

	"github.com/go-kit/log/level"

	"github.com/shapestone/yamlstream/internal/diag"
)

// scanDirective scans a %YAML or %TAG directive line.
//
// Grammar:
//
//	Directive = "%YAML" Blanks Version
//	          | "%TAG" Blanks Handle Blanks Prefix ;
func (s *Scanner) scanDirective() bool {
	// Directives reset the indentation level.
	s.unrollIndent(-1)
	s.simpleKeys = s.simpleKeys[:0]
	s.simpleKeyAllowed = false

	start := s.pos
	s.skip(1) // %
	nameStart := s.pos
	s.advanceWhile(s.skipNsChar)
	name := string(s.src[nameStart:s.pos])
	s.advanceWhile(s.skipSWhite)

	switch name {
	case "YAML":
		versionStart := s.pos
		s.advanceWhile(s.skipNsChar)
		if s.pos == versionStart {
			s.setError("expected a version number in %YAML directive", s.pos)
			return false
		}
		s.push(&Token{Kind: VersionDirective, Range: diag.Range{Start: start, End: s.pos}})
		level.Debug(s.logger).Log("msg", "version directive", "version", string(s.src[versionStart:s.pos]))
		return true

	case "TAG":
		handleStart := s.pos
		s.advanceWhile(s.skipNsChar)
		handle := string(s.src[handleStart:s.pos])
		if !isTagHandle(handle) {
			s.setError("expected a tag handle in %TAG directive", handleStart)
			return false
		}
		s.advanceWhile(s.skipSWhite)
		prefixStart := s.pos
		s.advanceWhile(s.skipNsChar)
		if s.pos == prefixStart {
			s.setError("expected a tag prefix in %TAG directive", s.pos)
			return false
		}
		s.push(&Token{Kind: TagDirective, Range: diag.Range{Start: start, End: s.pos}})
		level.Debug(s.logger).Log("msg", "tag directive", "handle", handle, "prefix", string(s.src[prefixStart:s.pos]))
		return true
	}

	s.setError("unknown directive %"+name, start)
	return false
}

// isTagHandle reports whether h is "!", "!!" or "!word!".
func isTagHandle(h string) bool {
	if len(h) == 0 || h[0] != '!' {
		return false
	}
	if h == "!" || h == "!!" {
		return true
	}
	if h[len(h)-1] != '!' {
		return false
	}
	for i := 1; i < len(h)-1; i++ {
		if !isWordChar(h[i]) {
			return false
		}
	}
	return true
}

// scanTag scans "!", "!<uri>", "!suffix" or "!handle!suffix".
func (s *Scanner) scanTag() bool {
	start, line, col := s.pos, s.line, s.column
	s.skip(1) // !

	switch {
	case s.isBlankOrBreak(s.pos):
		// The non-specific tag "!".
	case s.at(s.pos) == '<':
		s.skip(1)
		uriStart := s.pos
		s.scanURIChars()
		if s.pos == uriStart {
			s.setError("expected a URI in verbatim tag", s.pos)
			return false
		}
		if s.at(s.pos) != '>' {
			s.setError("expected '>' at the end of verbatim tag", s.pos)
			return false
		}
		s.skip(1)
	default:
		for s.pos < len(s.src) {
			if s.flowLevel > 0 && strings.IndexByte(",[]{}", s.src[s.pos]) >= 0 {
				break
			}
			i := s.skipNsChar(s.pos)
			if i == s.pos {
				break
			}
			s.pos = i
			s.column++
		}
		if !isShorthandTag(string(s.src[start:s.pos])) {
			s.setError("malformed tag", start)
			return false
		}
	}

	e := s.push(&Token{Kind: Tag, Range: diag.Range{Start: start, End: s.pos}})

	// Tags can be simple keys.
	s.saveSimpleKeyCandidate(e, line, col, false)
	s.simpleKeyAllowed = false
	return true
}

// isShorthandTag checks the "!handle!suffix" form: a named handle must
// consist of word characters and the suffix must not be empty.
func isShorthandTag(t string) bool {
	i := strings.LastIndexByte(t, '!')
	if i <= 0 {
		return true // "!suffix"
	}
	if i == len(t)-1 {
		return false // "!!" or "!e!" without a suffix
	}
	return isTagHandle(t[:i+1])
}

// scanURIChars advances over URI characters, including %XX escapes.
func (s *Scanner) scanURIChars() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '%' && isHexDigit(s.at(s.pos+1)) && isHexDigit(s.at(s.pos+2)):
			s.skip(3)
		case isWordChar(c) || strings.IndexByte("#;/?:@&=+$,_.!~*'()[]", c) >= 0:
			s.skip(1)
		default:
			return
		}
	}
}
