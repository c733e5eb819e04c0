package parser

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/yamlstream/internal/diag"
)

func documentOutlines(t *testing.T, input string) []string {
	t.Helper()
	s := NewStream([]byte(input))
	var out []string
	for doc := range s.Documents() {
		out = append(out, outline(doc.Root()))
	}
	require.NoError(t, s.Err())
	return out
}

// TestStream_Documents checks how streams split into documents.
func TestStream_Documents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty stream", "", []string{"~"}},
		{"single bare document", "a: b\n", []string{"{a: b}"}},
		{"single explicit document", "---\na: b\n", []string{"{a: b}"}},
		{"separators", "a\n---\nb\n---\nc\n", []string{"a", "b", "c"}},
		{"content after separator", "--- a\n--- b\n", []string{"a", "b"}},
		{"end markers", "a\n...\n---\nb\n...\n", []string{"a", "b"}},
		{"bare document after end marker", "a\n...\nb\n", []string{"a", "b"}},
		{"empty documents", "---\n---\n", []string{"~", "~"}},
		{"comments between documents", "# one\na\n# two\n---\n# three\nb\n", []string{"a", "b"}},
		{"mixed kinds", "- 1\n---\nk: v\n---\nplain\n", []string{"[1]", "{k: v}", "plain"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, documentOutlines(t, tt.input))
		})
	}
}

// TestStream_SkipUnreadDocuments checks that Next drains a document the
// caller did not read.
func TestStream_SkipUnreadDocuments(t *testing.T) {
	input := "apiVersion: v1\nkind: Service\nspec:\n  ports: [80, 443]\n---\napiVersion: apps/v1\nkind: Deployment\n"
	s := NewStream([]byte(input))

	first := s.Begin()
	require.NotNil(t, first)
	second := s.Next()
	require.NotNil(t, second)
	assert.True(t, second.Explicit())
	assert.False(t, first.Explicit())

	m, ok := second.Root().Mapping()
	require.True(t, ok)
	kv, ok := m.Next()
	require.True(t, ok)
	assert.Equal(t, "apiVersion", outline(kv.Key()))
	assert.Equal(t, "apps/v1", outline(kv.Value()))

	assert.Nil(t, s.Next())
	assert.Nil(t, s.Next())
	assert.NoError(t, s.Err())
}

// TestStream_NodesOutliveDocument checks that finished nodes stay
// readable after the stream moves on.
func TestStream_NodesOutliveDocument(t *testing.T) {
	s := NewStream([]byte("first\n---\nsecond\n"))
	root := s.Begin().Root()
	require.NotNil(t, s.Next())

	sc, ok := root.Scalar()
	require.True(t, ok)
	assert.Equal(t, "first", sc.Value())
}

// TestStream_BeginTwicePanics checks single-pass iteration.
func TestStream_BeginTwicePanics(t *testing.T) {
	s := NewStream([]byte("a"))
	s.Begin()
	assert.Panics(t, func() { s.Begin() })

	s = NewStream([]byte("a"))
	for range s.Documents() {
	}
	assert.Panics(t, func() {
		for range s.Documents() {
		}
	})
}

// TestStream_NextStartsStream checks that Next works without Begin.
func TestStream_NextStartsStream(t *testing.T) {
	s := NewStream([]byte("a\n---\nb\n"))
	var n int
	for d := s.Next(); d != nil; d = s.Next() {
		n++
	}
	assert.Equal(t, 2, n)
}

// TestStream_DocumentsBreak checks stopping the iterator early.
func TestStream_DocumentsBreak(t *testing.T) {
	s := NewStream([]byte("a\n---\nb\n---\nc\n"))
	var got []string
	for doc := range s.Documents() {
		got = append(got, outline(doc.Root()))
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

// TestDocument_Directives checks %YAML and %TAG handling.
func TestDocument_Directives(t *testing.T) {
	input := "%YAML 1.2\n%TAG !e! tag:example.com,2000:\n---\n!e!x a\n---\n!!str b\n"
	s := NewStream([]byte(input))

	first := s.Begin()
	assert.True(t, first.Explicit())
	assert.Equal(t, "1.2", first.Version())
	assert.Equal(t, map[string]string{
		"!":   "!",
		"!!":  "tag:yaml.org,2002:",
		"!e!": "tag:example.com,2000:",
	}, first.TagHandles())
	assert.Equal(t, "tag:example.com,2000:x", first.Root().VerbatimTag())
	assert.Same(t, s, first.Stream())

	// Directives apply to one document only.
	second := s.Next()
	require.NotNil(t, second)
	assert.Equal(t, "", second.Version())
	assert.NotContains(t, second.TagHandles(), "!e!")
	assert.Equal(t, TagStr, second.Root().VerbatimTag())
	require.NoError(t, s.Err())
}

// TestDocument_TagHandlesCopy checks that callers cannot change the
// document's handles.
func TestDocument_TagHandlesCopy(t *testing.T) {
	doc := NewStream([]byte("!x a")).Begin()
	doc.TagHandles()["!"] = "changed"
	assert.Equal(t, "!x", doc.Root().VerbatimTag())
}

// TestStream_Skip checks validation of whole streams.
func TestStream_Skip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"mapping", "a: b\nc: [1, 2]\n", true},
		{"nested flow", "- [1, {x: y}]\n", true},
		{"documents", "--- a\n--- b\n...\n", true},
		{"empty", "", true},
		{"directives", "%YAML 1.2\n---\na\n", true},
		{"unterminated quote", "a: 'b\n", false},
		{"unclosed flow sequence", "[a, b", false},
		{"unclosed flow mapping", "{a: 1", false},
		{"unknown directive", "%FOO\n---\na\n", false},
		{"directive without document start", "%YAML 1.2\na\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream([]byte(tt.input))
			s.Skip()
			assert.Equal(t, !tt.valid, s.Failed())
			if tt.valid {
				assert.NoError(t, s.Err())
			} else {
				assert.Error(t, s.Err())
			}
		})
	}
}

// TestStream_Err checks the error text and that only the first diagnostic
// reaches the sink.
func TestStream_Err(t *testing.T) {
	var c diag.Collector
	s := NewStream([]byte("[[a] b]\n}"), WithSink(&c))
	s.Skip()

	require.Len(t, c.Diagnostics, 1)
	assert.Equal(t, diag.Position{Offset: 5, Line: 0, Column: 5}, c.Diagnostics[0].Pos)
	assert.EqualError(t, s.Err(), "yaml: expected ',' between entries at line 1, column 6")

	var e *diag.Error
	require.ErrorAs(t, s.Err(), &e)
}

// TestStream_SetError checks errors raised by callers.
func TestStream_SetError(t *testing.T) {
	s := NewStream([]byte("a: *missing\n"))
	m, ok := s.Begin().Root().Mapping()
	require.True(t, ok)
	kv, ok := m.Next()
	require.True(t, ok)

	v := kv.Value()
	s.SetError(v, "unknown anchor")
	s.SetError(v, "second error")

	assert.EqualError(t, s.Err(), "yaml: unknown anchor at line 1, column 4")
	_, ok = m.Next()
	assert.False(t, ok)
}

// TestStream_Logger checks debug events.
func TestStream_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := level.NewFilter(log.NewLogfmtLogger(&buf), level.AllowDebug())

	s := NewStream([]byte("%TAG !e! tag:e,2000:\n--- a\n"), WithLogger(logger))
	s.Skip()

	out := buf.String()
	assert.Contains(t, out, "msg=document index=0 explicit=true")
	assert.Contains(t, out, "msg=\"registered tag handle\" handle=!e!")
}
