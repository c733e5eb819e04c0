package parser

import (
	"maps"
	"strings"

	"github.com/go-kit/log/level"

	"github.com/shapestone/yamlstream/internal/tokenizer"
)

// Document is one YAML document of a Stream. It owns the nodes built for
// it; they stay valid after the stream moves on, but their lazy parts can
// no longer be materialized.
type Document struct {
	stream *Stream

	// tags maps tag handles to prefixes. "!" and "!!" are predefined and
	// may be overridden by %TAG directives.
	tags    map[string]string
	version string

	// explicit is set when the document starts with directives or "---".
	explicit bool

	nodes arena
	root  *node
}

func newDocument(s *Stream) *Document {
	d := &Document{
		stream: s,
		tags: map[string]string{
			"!":  "!",
			"!!": "tag:yaml.org,2002:",
		},
	}
	if d.parseDirectives() {
		d.explicit = true
		d.expectToken(tokenizer.DocumentStart, "expected '---' after directives")
	} else if d.peek().Kind == tokenizer.DocumentStart {
		d.explicit = true
		d.next()
	}
	s.documentStarted(d)
	return d
}

// Root returns the root node, parsing it on first use. After an error the
// root is a Null node.
func (d *Document) Root() Node {
	if d.root == nil {
		if d.root = d.parseBlockNode(); d.root == nil {
			d.root = d.newNode(KindNull, d.peek())
		}
	}
	return Node{d.root}
}

// Skip drains the rest of the document and reports whether another
// document follows.
func (d *Document) Skip() bool {
	if d.failed() {
		return false
	}
	d.Root().Skip()
	ended := false
	for {
		t := d.peek()
		switch t.Kind {
		case tokenizer.StreamEnd, tokenizer.Error:
			return false
		case tokenizer.DocumentEnd:
			d.next()
			ended = true
		case tokenizer.DocumentStart, tokenizer.VersionDirective, tokenizer.TagDirective:
			return true
		default:
			// After "..." a bare document may follow.
			if ended {
				return true
			}
			d.setError("expected a document end or start after the document", t)
			return false
		}
	}
}

// Explicit reports whether the document began with directives or "---".
func (d *Document) Explicit() bool {
	return d.explicit
}

// Version returns the version of a %YAML directive, or "".
func (d *Document) Version() string {
	return d.version
}

// TagHandles returns the tag handles in effect and their prefixes.
func (d *Document) TagHandles() map[string]string {
	return maps.Clone(d.tags)
}

// Stream returns the stream d belongs to.
func (d *Document) Stream() *Stream {
	return d.stream
}

// parseDirectives consumes %YAML and %TAG directives and reports whether
// there were any.
//
// Grammar:
//
//	Directives = { "%YAML" Version | "%TAG" Handle Prefix } ;
func (d *Document) parseDirectives() bool {
	seen := false
	for {
		t := d.peek()
		switch t.Kind {
		case tokenizer.VersionDirective:
			d.next()
			if f := strings.Fields(d.text(t)); len(f) > 1 {
				d.version = f[1]
			}
		case tokenizer.TagDirective:
			d.next()
			// The scanner has checked the form "%TAG handle prefix".
			if f := strings.Fields(d.text(t)); len(f) > 2 {
				d.tags[f[1]] = f[2]
				level.Debug(d.stream.logger).Log("msg", "registered tag handle", "handle", f[1], "prefix", f[2])
			}
		default:
			return seen
		}
		seen = true
	}
}

func (d *Document) expectToken(k tokenizer.Kind, msg string) bool {
	t := d.next()
	if t.Kind != k {
		d.setError(msg, t)
		return false
	}
	return true
}

func (d *Document) peek() tokenizer.Token {
	return d.stream.scanner.Peek()
}

func (d *Document) next() tokenizer.Token {
	return d.stream.scanner.Next()
}

func (d *Document) failed() bool {
	return d.stream.scanner.Failed()
}

func (d *Document) setError(msg string, t tokenizer.Token) {
	d.stream.scanner.SetError(msg, t.Range)
}

func (d *Document) text(t tokenizer.Token) string {
	return t.Text(d.stream.scanner.Source())
}
