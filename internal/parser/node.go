package parser

import (
	"github.com/shapestone/yamlstream/internal/diag"
	"github.com/shapestone/yamlstream/internal/tokenizer"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindScalar
	KindBlockScalar
	KindAlias
	KindKeyValue
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindScalar:
		return "Scalar"
	case KindBlockScalar:
		return "BlockScalar"
	case KindAlias:
		return "Alias"
	case KindKeyValue:
		return "KeyValue"
	case KindMapping:
		return "Mapping"
	case KindSequence:
		return "Sequence"
	}
	return "Invalid"
}

// Style is the syntax a collection was written in.
type Style int

const (
	// StyleBlock collections are delimited by indentation.
	StyleBlock Style = iota
	// StyleFlow collections are delimited by brackets or braces.
	StyleFlow
	// StyleInline is a single "key: value" pair written where a node was
	// expected, as in "[a: b]" or "- a: b" inside a flow sequence.
	StyleInline
	// StyleIndentless is a block sequence at the indentation of its parent
	// mapping key.
	StyleIndentless
)

func (s Style) String() string {
	switch s {
	case StyleFlow:
		return "flow"
	case StyleInline:
		return "inline"
	case StyleIndentless:
		return "indentless"
	}
	return "block"
}

// node is the storage behind every Node. Which fields are used depends on
// kind.
type node struct {
	doc  *Document
	kind Kind

	anchor string
	tag    string
	tagRng diag.Range

	// rng spans the properties and the content; text is the content
	// token alone.
	rng  diag.Range
	text diag.Range

	// BlockScalar body or Alias name.
	value string

	// KeyValue slots, filled on first access.
	key, val *node

	// Collection cursor.
	style      Style
	cur        *node
	atEnd      bool
	afterEntry bool // the previous token was a flow entry
}

// Node is a handle to a node of a Document. The zero Node is an invalid
// node of no kind.
type Node struct {
	n *node
}

// Kind returns the variant of n.
func (n Node) Kind() Kind {
	if n.n == nil {
		return KindInvalid
	}
	return n.n.kind
}

// IsValid reports whether n refers to a node.
func (n Node) IsValid() bool {
	return n.n != nil
}

// Anchor returns the anchor name without "&", or "".
func (n Node) Anchor() string {
	if n.n == nil {
		return ""
	}
	return n.n.anchor
}

// RawTag returns the tag as written, or "".
func (n Node) RawTag() string {
	if n.n == nil {
		return ""
	}
	return n.n.tag
}

// Range returns the byte range of n in the stream source. For collections
// the range grows as entries are consumed.
func (n Node) Range() diag.Range {
	if n.n == nil {
		return diag.Range{}
	}
	return n.n.rng
}

// Position returns the line and column n starts at.
func (n Node) Position() diag.Position {
	if n.n == nil {
		return diag.Position{}
	}
	return n.n.doc.stream.Position(n.n.rng.Start)
}

// Document returns the document n belongs to.
func (n Node) Document() *Document {
	if n.n == nil {
		return nil
	}
	return n.n.doc
}

// Skip consumes whatever of n has not been parsed yet.
func (n Node) Skip() {
	if n.n == nil {
		return
	}
	switch n.n.kind {
	case KindKeyValue:
		kv := KeyValue(n)
		kv.Key().Skip()
		kv.Value().Skip()
	case KindMapping:
		m := Mapping(n)
		for {
			if _, ok := m.Next(); !ok {
				return
			}
		}
	case KindSequence:
		s := Sequence(n)
		for {
			if _, ok := s.Next(); !ok {
				return
			}
		}
	}
}

// Scalar returns n as a Scalar.
func (n Node) Scalar() (Scalar, bool) {
	return Scalar(n), n.Kind() == KindScalar
}

// BlockScalar returns n as a BlockScalar.
func (n Node) BlockScalar() (BlockScalar, bool) {
	return BlockScalar(n), n.Kind() == KindBlockScalar
}

// Alias returns n as an Alias.
func (n Node) Alias() (Alias, bool) {
	return Alias(n), n.Kind() == KindAlias
}

// KeyValue returns n as a KeyValue.
func (n Node) KeyValue() (KeyValue, bool) {
	return KeyValue(n), n.Kind() == KindKeyValue
}

// Mapping returns n as a Mapping.
func (n Node) Mapping() (Mapping, bool) {
	return Mapping(n), n.Kind() == KindMapping
}

// Sequence returns n as a Sequence.
func (n Node) Sequence() (Sequence, bool) {
	return Sequence(n), n.Kind() == KindSequence
}

// BlockScalar is a literal ("|") or folded (">") scalar.
type BlockScalar Node

// Value returns the body with indentation removed and chomping applied.
func (b BlockScalar) Value() string {
	return b.n.value
}

// Node returns b as a plain Node.
func (b BlockScalar) Node() Node { return Node(b) }

// Alias is a "*name" reference to an anchored node. Resolving it is up to
// the caller.
type Alias Node

// Name returns the referenced anchor name without "*".
func (a Alias) Name() string {
	return a.n.value
}

// Node returns a as a plain Node.
func (a Alias) Node() Node { return Node(a) }

// newNode allocates a node of kind whose range is that of token t.
func (d *Document) newNode(kind Kind, t tokenizer.Token) *node {
	n := d.nodes.alloc()
	n.doc = d
	n.kind = kind
	n.rng = t.Range
	n.text = t.Range
	return n
}

// nodeChunk is the number of nodes allocated at once. Nodes are never
// moved, so handles stay valid while the arena grows.
const nodeChunk = 64

type arena struct {
	chunks [][]node
}

func (a *arena) alloc() *node {
	if len(a.chunks) == 0 || len(a.chunks[len(a.chunks)-1]) == nodeChunk {
		a.chunks = append(a.chunks, make([]node, 0, nodeChunk))
	}
	last := len(a.chunks) - 1
	a.chunks[last] = append(a.chunks[last], node{})
	return &a.chunks[last][len(a.chunks[last])-1]
}

// len returns the number of allocated nodes.
func (a *arena) len() int {
	if len(a.chunks) == 0 {
		return 0
	}
	return (len(a.chunks)-1)*nodeChunk + len(a.chunks[len(a.chunks)-1])
}
