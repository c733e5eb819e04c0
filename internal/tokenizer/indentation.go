package tokenizer

import (
	"container/list"

	"github.com/shapestone/yamlstream/internal/diag"
)

// Block structure is defined by indentation. The scanner keeps a stack of
// the columns of open block collections and emits:
//   - BlockSequenceStart / BlockMappingStart when a collection opens at a
//     column deeper than the current indent
//   - one BlockEnd per level popped when a line starts at a shallower column
//
// Example:
//
//	Input:
//	  name: Alice
//	  children:
//	    - Bob
//	    - Carol
//
//	Tokens emitted:
//	  Block-Mapping-Start, Key, "name", Value, "Alice",
//	  Key, "children", Value,
//	  Block-Sequence-Start, Block-Entry, "Bob", Block-Entry, "Carol",
//	  Block-End, Block-End
//
// Indentation is ignored inside flow collections.

// rollIndent opens a block collection of the given kind at column when it
// is deeper than the current indent. The start token is inserted before
// mark, or appended when mark is nil.
func (s *Scanner) rollIndent(column int, kind Kind, mark *list.Element) {
	if s.flowLevel > 0 || s.indent >= column {
		return
	}
	s.indents = append(s.indents, s.indent)
	s.indent = column

	if mark == nil {
		s.queue.PushBack(&Token{Kind: kind, Range: diag.Range{Start: s.pos, End: s.pos}})
		return
	}
	at := mark.Value.(*Token).Range.Start
	s.queue.InsertBefore(&Token{Kind: kind, Range: diag.Range{Start: at, End: at}}, mark)
}

// unrollIndent closes every block collection deeper than column.
func (s *Scanner) unrollIndent(column int) {
	if s.flowLevel > 0 {
		return
	}
	for s.indent > column {
		s.queue.PushBack(&Token{Kind: BlockEnd, Range: diag.Range{Start: s.pos, End: s.pos}})
		n := len(s.indents) - 1
		s.indent = s.indents[n]
		s.indents = s.indents[:n]
	}
}
