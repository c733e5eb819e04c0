package yaml

import (
	"strconv"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/yamlstream/internal/parser"
)

// builder materializes one document of the lazy tree into shape-core AST
// nodes. Problems found while building are latched on the stream, so they
// carry a source position like syntax errors do.
type builder struct {
	stream  *parser.Stream
	anchors map[string]ast.SchemaNode
}

func newBuilder(s *parser.Stream) *builder {
	return &builder{stream: s, anchors: make(map[string]ast.SchemaNode)}
}

// document builds the root of doc. An empty document is an empty
// ObjectNode.
func (b *builder) document(doc *parser.Document) ast.SchemaNode {
	root := doc.Root()
	if root.Kind() == parser.KindNull && root.RawTag() == "" && root.Anchor() == "" {
		return ast.NewObjectNode(map[string]ast.SchemaNode{}, b.position(root))
	}
	return b.build(root)
}

// build converts n and everything below it. After an error it returns a
// null literal; callers check the stream.
func (b *builder) build(n parser.Node) ast.SchemaNode {
	var out ast.SchemaNode
	switch n.Kind() {
	case parser.KindAlias:
		a, _ := n.Alias()
		target, ok := b.anchors[a.Name()]
		if !ok {
			b.stream.SetError(n, "unknown anchor "+strconv.Quote(a.Name()))
			return b.null(n)
		}
		return target
	case parser.KindMapping:
		out = b.mapping(n)
	case parser.KindSequence:
		out = b.sequence(n)
	default:
		out = b.scalar(n)
	}
	if name := n.Anchor(); name != "" {
		b.anchors[name] = out
	}
	return out
}

func (b *builder) scalar(n parser.Node) ast.SchemaNode {
	var text string
	plain := false
	switch n.Kind() {
	case parser.KindScalar:
		s, _ := n.Scalar()
		text = s.Value()
		plain = !s.IsQuoted()
	case parser.KindBlockScalar:
		bs, _ := n.BlockScalar()
		text = bs.Value()
	case parser.KindNull:
		plain = true
	}

	v, err := scalarValue(b.tag(n), text, plain)
	if err != nil {
		b.stream.SetError(n, err.Error())
		return b.null(n)
	}
	return ast.NewLiteralNode(v, b.position(n))
}

func (b *builder) mapping(n parser.Node) ast.SchemaNode {
	if tag := b.tag(n); tag != "" && tag != parser.TagMap && isCoreTag(tag) {
		b.stream.SetError(n, shortTag(tag)+" tag applied to a mapping")
		return b.null(n)
	}
	m, _ := n.Mapping()
	props := make(map[string]ast.SchemaNode)
	for kv := range m.All() {
		key, ok := b.key(kv.Key())
		if !ok {
			break
		}
		if _, dup := props[key]; dup {
			b.stream.SetError(kv.Key(), "duplicate mapping key "+strconv.Quote(key))
			break
		}
		props[key] = b.build(kv.Value())
	}
	return ast.NewObjectNode(props, b.position(n))
}

// sequence builds an ObjectNode keyed by element index.
func (b *builder) sequence(n parser.Node) ast.SchemaNode {
	if tag := b.tag(n); tag != "" && tag != parser.TagSeq && isCoreTag(tag) {
		b.stream.SetError(n, shortTag(tag)+" tag applied to a sequence")
		return b.null(n)
	}
	s, _ := n.Sequence()
	props := make(map[string]ast.SchemaNode)
	i := 0
	for e := range s.All() {
		props[strconv.Itoa(i)] = b.build(e)
		i++
	}
	return ast.NewObjectNode(props, b.position(n))
}

// key returns the text of a mapping key. Keys are taken as written, so
// "1" and "01" stay distinct.
func (b *builder) key(n parser.Node) (string, bool) {
	if n.Anchor() != "" {
		b.build(n)
	} else if n.RawTag() != "" {
		// Key tags are checked but do not change the key text.
		b.tag(n)
	}
	switch n.Kind() {
	case parser.KindNull:
		return "", true
	case parser.KindScalar:
		s, _ := n.Scalar()
		return s.Value(), true
	case parser.KindBlockScalar:
		bs, _ := n.BlockScalar()
		return bs.Value(), true
	case parser.KindAlias:
		lit, ok := b.build(n).(*ast.LiteralNode)
		if !ok {
			break
		}
		return literalText(lit.Value()), true
	}
	if !b.stream.Failed() {
		b.stream.SetError(n, "mapping keys must be scalars")
	}
	return "", false
}

// tag returns the expanded tag of n, or "" for an untagged node.
func (b *builder) tag(n parser.Node) string {
	if n.RawTag() == "" {
		return ""
	}
	return n.VerbatimTag()
}

func (b *builder) null(n parser.Node) ast.SchemaNode {
	return ast.NewLiteralNode(nil, b.position(n))
}

// position converts the node's zero-based position to shape-core's
// one-based line and column.
func (b *builder) position(n parser.Node) ast.Position {
	p := n.Position()
	return ast.NewPosition(p.Offset, p.Line+1, p.Column+1)
}

func isCoreTag(tag string) bool {
	switch tag {
	case parser.TagNull, parser.TagStr, parser.TagInt, parser.TagFloat,
		parser.TagBool, parser.TagMap, parser.TagSeq:
		return true
	}
	return false
}

// literalText formats a resolved scalar back to text for use as a key.
func literalText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return ""
}
