// Package yaml parses YAML 1.2 streams into Shape's unified AST.
//
// Parsing is built on a lazily materialized tree: the scanner produces
// tokens only as the tree asks for them, and this package walks that tree
// once to produce shape-core nodes. Plain scalars are resolved with the
// YAML 1.2 core schema (null, bool, int, float, str), the core tags !!str,
// !!int, !!float, !!bool and !!null force a type, and aliases resolve to
// the node of the anchor defined earlier in the same document.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple
// goroutines. Each call creates its own stream with no shared mutable state.
//
// # Parsing APIs
//
//   - Parse(string) parses the first document of a string
//   - ParseReader(io.Reader) does the same for any io.Reader
//   - ParseMultiDoc(string) parses every document of a stream
//   - Validate(string) checks a whole stream without building an AST
//   - DumpTokens(io.Writer, string) prints the token stream, for debugging
//
// # Example usage with Parse:
//
//	node, err := yaml.Parse("name: Alice\nage: 30\n")
//	if err != nil {
//	    // handle error
//	}
//	obj := node.(*ast.ObjectNode)
//	name, _ := obj.GetProperty("name")
//	fmt.Println(name.(*ast.LiteralNode).Value()) // Alice
//
// Input may be UTF-8, UTF-16 or UTF-32, with or without a byte order mark.
package yaml

import (
	"io"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/yamlstream/internal/diag"
	"github.com/shapestone/yamlstream/internal/parser"
	"github.com/shapestone/yamlstream/internal/tokenizer"
)

type options struct {
	logger log.Logger
	name   string
}

// Option configures parsing.
type Option func(*options)

// WithLogger logs syntax errors at error level and stream events at debug
// level to logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithName sets the input name attached to logged errors, such as a file
// name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func newStream(src []byte, opts []Option) *parser.Stream {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var popts []parser.Option
	if o.logger != nil {
		popts = append(popts,
			parser.WithLogger(o.logger),
			parser.WithSink(diag.NewLogSink(o.logger, o.name)),
		)
	}
	return parser.NewStream(src, popts...)
}

// Parse parses the first document of a YAML stream into an AST.
//
// Returns an ast.SchemaNode representing the document:
//   - *ast.ObjectNode for mappings and sequences
//     (sequences use numeric string keys "0", "1", "2", ...)
//   - *ast.LiteralNode for scalars (string, int64, float64, bool, nil)
//
// An empty document is an empty *ast.ObjectNode. Documents after the first
// are not read; use ParseMultiDoc for streams of several documents.
//
// Example:
//
//	node, err := yaml.Parse(`
//	name: Alice
//	age: 30
//	`)
//	obj := node.(*ast.ObjectNode)
//	nameNode, _ := obj.GetProperty("name")
//	name := nameNode.(*ast.LiteralNode).Value().(string) // "Alice"
func Parse(input string, opts ...Option) (ast.SchemaNode, error) {
	return parseFirst([]byte(input), opts)
}

// ParseReader reads all of reader and parses its first document.
//
// The lazy tree indexes into the source, so the whole input is held in
// memory while parsing.
//
// Example:
//
//	file, err := os.Open("config.yaml")
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//
//	node, err := yaml.ParseReader(file)
func ParseReader(reader io.Reader, opts ...Option) (ast.SchemaNode, error) {
	src, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading YAML input")
	}
	return parseFirst(src, opts)
}

func parseFirst(src []byte, opts []Option) (ast.SchemaNode, error) {
	s := newStream(src, opts)
	node := newBuilder(s).document(s.Begin())
	if err := s.Err(); err != nil {
		ReleaseTree(node)
		return nil, errors.Wrap(err, "parsing YAML")
	}
	return node, nil
}

// ParseMultiDoc parses every document of a YAML stream.
//
// Documents are separated by --- markers and may end with ... markers.
// An explicit empty document ("---" with no content) is an empty
// *ast.ObjectNode; an input with no documents at all, such as one holding
// only comments, yields an empty slice.
//
// Example:
//
//	docs, err := yaml.ParseMultiDoc("---\nkind: ConfigMap\n---\nkind: Service\n")
//	if err != nil {
//	    return err
//	}
//	// docs[0] is the ConfigMap, docs[1] the Service
func ParseMultiDoc(input string, opts ...Option) ([]ast.SchemaNode, error) {
	return parseAll([]byte(input), opts)
}

// ParseMultiDocReader reads all of reader and parses every document.
func ParseMultiDocReader(reader io.Reader, opts ...Option) ([]ast.SchemaNode, error) {
	src, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading YAML input")
	}
	return parseAll(src, opts)
}

func parseAll(src []byte, opts []Option) ([]ast.SchemaNode, error) {
	s := newStream(src, opts)
	docs := []ast.SchemaNode{}
	i := -1
	for doc := range s.Documents() {
		i++
		root := doc.Root()
		if !doc.Explicit() && root.Kind() == parser.KindNull && root.RawTag() == "" && root.Anchor() == "" {
			// An input of comments or blank lines only.
			continue
		}
		docs = append(docs, newBuilder(s).document(doc))
		if s.Failed() {
			break
		}
	}
	if err := s.Err(); err != nil {
		for _, d := range docs {
			ReleaseTree(d)
		}
		return nil, errors.Wrapf(err, "parsing YAML document %d", i)
	}
	return docs, nil
}

// DumpTokens writes the token stream of input to w, one token per line
// with its kind and byte range. It is meant for debugging the scanner.
func DumpTokens(w io.Writer, input string) error {
	return errors.Wrap(tokenizer.Dump(w, []byte(input)), "dumping tokens")
}
