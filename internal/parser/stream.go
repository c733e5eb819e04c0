// Package parser builds a lazily materialized tree over the tokens of a
// YAML stream.
//
// Nothing is parsed ahead of the caller. A Stream yields Documents one at a
// time; a Document yields its root Node; Mapping and Sequence nodes yield
// their children through Next. Moving past a child drains whatever part of
// it the caller did not visit, so at most one unfinished subtree exists per
// container.
//
// Example:
//
//	s := parser.NewStream(src)
//	for doc := range s.Documents() {
//		if m, ok := doc.Root().Mapping(); ok {
//			for kv := range m.All() {
//				k, _ := kv.Key().Scalar()
//				fmt.Println(k.Value())
//			}
//		}
//	}
//	if err := s.Err(); err != nil {
//		// handle error
//	}
package parser

import (
	"iter"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/shapestone/yamlstream/internal/diag"
	"github.com/shapestone/yamlstream/internal/tokenizer"
)

// Stream is a single forward pass over the documents of one input.
// A Stream is not safe for concurrent use.
type Stream struct {
	scanner *tokenizer.Scanner
	logger  log.Logger

	begun bool
	doc   *Document
	count int
}

// NewStream returns a Stream over src.
func NewStream(src []byte, opts ...Option) *Stream {
	c := newConfig(opts)
	return &Stream{
		scanner: tokenizer.NewScanner(src, c.scannerOptions()...),
		logger:  c.logger,
	}
}

// Begin returns the first document. A stream can be iterated only once:
// calling Begin a second time panics.
func (s *Stream) Begin() *Document {
	if s.begun {
		panic("yamlstream: Stream.Begin called more than once")
	}
	s.begun = true

	// Stream-Start
	s.scanner.Next()
	s.doc = newDocument(s)
	return s.doc
}

// Next skips the rest of the current document and returns the following
// one, or nil at the end of the stream.
func (s *Stream) Next() *Document {
	if !s.begun {
		return s.Begin()
	}
	if s.doc == nil {
		return nil
	}
	if !s.doc.Skip() {
		s.doc = nil
		return nil
	}
	s.doc = newDocument(s)
	return s.doc
}

// Documents iterates over the documents of the stream. Like Begin, it may
// be used only once.
func (s *Stream) Documents() iter.Seq[*Document] {
	return func(yield func(*Document) bool) {
		for d := s.Begin(); d != nil; d = s.Next() {
			if !yield(d) {
				return
			}
		}
	}
}

// Skip parses the whole stream without keeping any tree, which validates
// it. The outcome is reported by Failed and Err.
func (s *Stream) Skip() {
	for range s.Documents() {
	}
}

// Failed reports whether an error has been encountered.
func (s *Stream) Failed() bool {
	return s.scanner.Failed()
}

// Err returns the first error encountered, or nil.
func (s *Stream) Err() error {
	return s.scanner.Err()
}

// Source returns the UTF-8 text node ranges refer to.
func (s *Stream) Source() []byte {
	return s.scanner.Source()
}

// Position converts a byte offset of Source into a line and column.
func (s *Stream) Position(off int) diag.Position {
	return s.scanner.Position(off)
}

// SetError latches an error at node n unless one is already latched.
// Callers use it to report problems found while interpreting the tree,
// such as an unknown alias.
func (s *Stream) SetError(n Node, msg string) {
	s.scanner.SetError(msg, n.Range())
}

func (s *Stream) documentStarted(d *Document) {
	s.count++
	level.Debug(s.logger).Log("msg", "document", "index", s.count-1, "explicit", d.explicit)
}
