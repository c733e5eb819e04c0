package parser

import (
	"iter"

	"github.com/shapestone/yamlstream/internal/tokenizer"
)

// Mapping is a block, flow or inline mapping. Its entries are parsed one
// at a time by Next.
type Mapping Node

// Node returns m as a plain Node.
func (m Mapping) Node() Node { return Node(m) }

// Style returns how the mapping was written.
func (m Mapping) Style() Style {
	return m.n.style
}

// Next skips the rest of the previous entry and returns the next one. It
// returns false at the end of the mapping or after an error.
func (m Mapping) Next() (KeyValue, bool) {
	n := m.n
	if n.atEnd {
		return KeyValue{}, false
	}
	n.incrementMapping()
	if n.cur == nil {
		return KeyValue{}, false
	}
	return KeyValue{n.cur}, true
}

// All iterates over the remaining entries.
func (m Mapping) All() iter.Seq[KeyValue] {
	return func(yield func(KeyValue) bool) {
		for {
			kv, ok := m.Next()
			if !ok || !yield(kv) {
				return
			}
		}
	}
}

func (n *node) end() {
	n.atEnd = true
	n.cur = nil
}

// finish records the end of the collection at the token that closes it.
func (n *node) finish(t tokenizer.Token) {
	n.rng.End = max(n.rng.End, t.Range.End)
	n.end()
}

func (n *node) incrementMapping() {
	d := n.doc
	if d.failed() {
		n.end()
		return
	}
	if n.cur != nil {
		Node{n.cur}.Skip()
		n.rng.End = max(n.rng.End, n.cur.rng.End)
		if n.style == StyleInline {
			n.end()
			return
		}
	}

	t := d.peek()
	if n.style != StyleFlow {
		if n.startsEntry(t) {
			// The KeyValue consumes the Key, which lets it detect empty keys.
			n.cur = d.newNode(KindKeyValue, emptyAt(t))
			return
		}
		switch t.Kind {
		case tokenizer.BlockEnd:
			if n.style == StyleBlock {
				d.next()
				n.finish(t)
				return
			}
		case tokenizer.Error:
			n.end()
			return
		}
		if n.style == StyleBlock {
			d.setError("unexpected token, expected a key or the end of the block mapping", t)
		}
		n.end()
		return
	}

	for t.Kind == tokenizer.FlowEntry {
		d.next()
		n.afterEntry = true
		t = d.peek()
	}
	switch {
	case t.Kind == tokenizer.FlowMappingEnd:
		d.next()
		n.finish(t)
	case t.Kind == tokenizer.Error:
		n.end()
	case !n.startsEntry(t):
		d.setError("unexpected token, expected a key, ',' or '}'", t)
		n.end()
	case !n.afterEntry:
		d.setError("expected ',' between entries", t)
		n.end()
	default:
		n.cur = d.newNode(KindKeyValue, emptyAt(t))
		n.afterEntry = false
	}
}

// startsEntry reports whether t begins a mapping entry. A flow mapping also
// accepts a bare scalar, as in "{a, b}".
func (n *node) startsEntry(t tokenizer.Token) bool {
	switch t.Kind {
	case tokenizer.Key, tokenizer.Value:
		return true
	case tokenizer.Scalar:
		return n.style == StyleFlow
	}
	return false
}

// Sequence is a block, flow or indentless sequence. Its entries are parsed
// one at a time by Next.
type Sequence Node

// Node returns s as a plain Node.
func (s Sequence) Node() Node { return Node(s) }

// Style returns how the sequence was written.
func (s Sequence) Style() Style {
	return s.n.style
}

// Next skips the rest of the previous entry and returns the next one. It
// returns false at the end of the sequence or after an error.
func (s Sequence) Next() (Node, bool) {
	n := s.n
	if n.atEnd {
		return Node{}, false
	}
	n.incrementSequence()
	if n.cur == nil {
		return Node{}, false
	}
	return Node{n.cur}, true
}

// All iterates over the remaining entries.
func (s Sequence) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for {
			e, ok := s.Next()
			if !ok || !yield(e) {
				return
			}
		}
	}
}

func (n *node) incrementSequence() {
	d := n.doc
	if d.failed() {
		n.end()
		return
	}
	if n.cur != nil {
		Node{n.cur}.Skip()
		n.rng.End = max(n.rng.End, n.cur.rng.End)
	}

	t := d.peek()
	switch n.style {
	case StyleBlock, StyleIndentless:
		switch t.Kind {
		case tokenizer.BlockEntry:
			d.next()
			n.rng.End = max(n.rng.End, t.Range.End)
			if next := d.peek(); next.Kind == tokenizer.BlockEntry || next.Kind == tokenizer.BlockEnd {
				// "-" with nothing after it.
				n.cur = d.newNode(KindNull, emptyAt(next))
				return
			}
			if n.cur = d.parseBlockNode(); n.cur == nil {
				n.end()
			}
		case tokenizer.BlockEnd:
			if n.style == StyleIndentless {
				// Block-End belongs to the enclosing mapping.
				n.end()
				return
			}
			d.next()
			n.finish(t)
		case tokenizer.Error:
			n.end()
		default:
			if n.style == StyleIndentless {
				n.end()
				return
			}
			d.setError("unexpected token, expected a block entry or the end of the block sequence", t)
			n.end()
		}

	case StyleFlow:
		for t.Kind == tokenizer.FlowEntry {
			d.next()
			n.afterEntry = true
			t = d.peek()
		}
		switch t.Kind {
		case tokenizer.FlowSequenceEnd:
			d.next()
			n.finish(t)
		case tokenizer.Error:
			n.end()
		case tokenizer.StreamEnd, tokenizer.DocumentEnd, tokenizer.DocumentStart:
			d.setError("could not find closing ']'", t)
			n.end()
		default:
			if !n.afterEntry {
				d.setError("expected ',' between entries", t)
				n.end()
				return
			}
			if n.cur = d.parseBlockNode(); n.cur == nil {
				n.end()
				return
			}
			n.afterEntry = false
		}
	}
}

// KeyValue is one entry of a Mapping. Its key and value are parsed on
// first access.
type KeyValue Node

// Node returns kv as a plain Node.
func (kv KeyValue) Node() Node { return Node(kv) }

// Key returns the key. A missing key is a Null node.
//
// Grammar:
//
//	Entry = [ "?" ] [ Node ] [ ":" [ Node ] ] ;
func (kv KeyValue) Key() Node {
	n := kv.n
	if n.key != nil {
		return Node{n.key}
	}
	d := n.doc

	t := d.peek()
	switch t.Kind {
	case tokenizer.BlockEnd, tokenizer.Value, tokenizer.Error:
		// An implicit empty key.
		n.key = d.newNode(KindNull, emptyAt(t))
		return Node{n.key}
	case tokenizer.Key:
		d.next()
	}

	t = d.peek()
	switch t.Kind {
	case tokenizer.BlockEnd, tokenizer.Value:
		// An explicit empty key: "? " with nothing after it.
		n.key = d.newNode(KindNull, emptyAt(t))
	default:
		if n.key = d.parseBlockNode(); n.key == nil {
			n.key = d.newNode(KindNull, emptyAt(t))
		}
	}
	n.rng.End = max(n.rng.End, n.key.rng.End)
	return Node{n.key}
}

// Value returns the value, skipping what is left of the key first. A
// missing value is a Null node.
func (kv KeyValue) Value() Node {
	n := kv.n
	if n.val != nil {
		return Node{n.val}
	}
	d := n.doc

	kv.Key().Skip()
	if d.failed() {
		n.val = d.newNode(KindNull, emptyAt(d.peek()))
		return Node{n.val}
	}

	t := d.peek()
	switch t.Kind {
	case tokenizer.BlockEnd, tokenizer.FlowMappingEnd, tokenizer.Key, tokenizer.FlowEntry, tokenizer.Error:
		// An implicit empty value: a key without ':'.
		n.val = d.newNode(KindNull, emptyAt(t))
		return Node{n.val}
	case tokenizer.Value:
		d.next()
	default:
		d.setError("unexpected token in key/value pair, expected ':'", t)
		n.val = d.newNode(KindNull, emptyAt(t))
		return Node{n.val}
	}

	t = d.peek()
	switch t.Kind {
	case tokenizer.BlockEnd, tokenizer.Key:
		// An explicit empty value: ':' with nothing after it.
		n.val = d.newNode(KindNull, emptyAt(t))
	default:
		if n.val = d.parseBlockNode(); n.val == nil {
			n.val = d.newNode(KindNull, emptyAt(t))
		}
	}
	n.rng.End = max(n.rng.End, n.val.rng.End)
	return Node{n.val}
}
