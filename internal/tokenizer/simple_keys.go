package tokenizer

import "container/list"

// maxSimpleKeyLength bounds how far a ':' may follow its key on a line.
const maxSimpleKeyLength = 1024

// simpleKey is a token that becomes a mapping key if a ':' follows it on
// the same line.
type simpleKey struct {
	tok       *list.Element
	line      int
	column    int
	flowLevel int
	// required is never set by the scanner itself; an unresolved required
	// key is reported when it goes stale.
	required bool
}

func (s *Scanner) saveSimpleKeyCandidate(tok *list.Element, line, column int, required bool) {
	if !s.simpleKeyAllowed {
		return
	}
	s.simpleKeys = append(s.simpleKeys, simpleKey{
		tok:       tok,
		line:      line,
		column:    column,
		flowLevel: s.flowLevel,
		required:  required,
	})
}

// removeStaleSimpleKeyCandidates drops candidates that can no longer be
// followed by their ':'.
func (s *Scanner) removeStaleSimpleKeyCandidates() {
	keep := s.simpleKeys[:0]
	for _, sk := range s.simpleKeys {
		if sk.line != s.line || sk.column+maxSimpleKeyLength < s.column {
			if sk.required {
				s.setError("could not find expected ':' for simple key", sk.tok.Value.(*Token).Range.Start)
			}
			continue
		}
		keep = append(keep, sk)
	}
	s.simpleKeys = keep
}

func (s *Scanner) removeSimpleKeyCandidatesOnFlowLevel(level int) {
	if n := len(s.simpleKeys); n > 0 && s.simpleKeys[n-1].flowLevel == level {
		s.simpleKeys = s.simpleKeys[:n-1]
	}
}

func (s *Scanner) isSimpleKeyCandidate(e *list.Element) bool {
	for _, sk := range s.simpleKeys {
		if sk.tok == e {
			return true
		}
	}
	return false
}
