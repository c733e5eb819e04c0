package yaml

import (
	"github.com/pkg/errors"

	"github.com/shapestone/yamlstream/internal/parser"
)

// Validate checks that every document of a YAML stream is syntactically
// valid. Returns nil if valid, or an error with the line and column of the
// first problem.
//
// Validate walks the stream without building an AST. Besides structure it
// checks escape sequences of double-quoted scalars and tag handles. It does
// not resolve aliases or check for duplicate keys; Parse reports those.
//
// Example:
//
//	if err := yaml.Validate("name: Alice\nage: 30\n"); err != nil {
//	    fmt.Printf("Invalid YAML: %v\n", err)
//	}
func Validate(input string, opts ...Option) error {
	s := newStream([]byte(input), opts)
	for doc := range s.Documents() {
		validateNode(doc.Root())
		if s.Failed() {
			break
		}
	}
	return errors.Wrap(s.Err(), "invalid YAML")
}

func validateNode(n parser.Node) {
	if n.RawTag() != "" {
		n.VerbatimTag()
	}
	switch n.Kind() {
	case parser.KindScalar:
		s, _ := n.Scalar()
		if s.IsQuoted() {
			s.AppendValue(nil)
		}
	case parser.KindMapping:
		m, _ := n.Mapping()
		for kv := range m.All() {
			validateNode(kv.Key())
			validateNode(kv.Value())
		}
	case parser.KindSequence:
		s, _ := n.Sequence()
		for e := range s.All() {
			validateNode(e)
		}
	}
}
