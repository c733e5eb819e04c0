package yaml

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidYAML(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"only comments", "# nothing here\n"},
		{"simple key-value", "key: value"},
		{"nested mapping", "server:\n  host: localhost\n  port: 8080\n"},
		{"list", "items:\n  - one\n  - two\n"},
		{"flow collections", "a: [1, 2, {b: c}]\n"},
		{"document marker", "---\nkey: value"},
		{"several documents", "--- a\n--- b\n...\n"},
		{"comment with hash in quotes", `message: "Use # for comments"`},
		{"numbers", "count: 42\nprice: 99.99\nnegative: -10"},
		{"empty value", "key:"},
		{"block scalar", "text: |\n  line one\n  line two\n"},
		{"anchors", "base: &b {x: 1}\ncopy: *b\n"},
		{"tags", "%TAG !e! tag:example.com,2000:\n--- !e!thing\nn: !!int 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, Validate(tt.yaml))
		})
	}
}

func TestValidate_InvalidYAML(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"tab in indentation", "host: localhost\n\tport: 8080", "tab character"},
		{"unclosed double quote", `key: "unclosed value`, "expected quote at end of scalar"},
		{"unclosed single quote", `key: 'unclosed value`, "expected quote at end of scalar"},
		{"bad escape", `key: "a\qb"`, "unrecognized escape code"},
		{"unknown tag handle", "key: !x!y value", "unknown tag handle !x!"},
		{"unclosed flow", "key: [a, b", "could not find closing ']'"},
		{"error in second document", "a\n---\n[b", "could not find closing ']'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.yaml)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Contains(t, err.Error(), "invalid YAML: ")
		})
	}
}

func TestValidate_ErrorPosition(t *testing.T) {
	err := Validate("a: 1\nb: \"x\\q\"\n")
	require.Error(t, err)
	assert.EqualError(t, err, "invalid YAML: yaml: unrecognized escape code at line 2, column 6")
}

func TestValidate_LogsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)

	err := Validate("key: [a", WithLogger(logger), WithName("config.yaml"))
	require.Error(t, err)
	assert.Contains(t, buf.String(), `level=error input=config.yaml msg="could not find closing ']'" line=1 col=8`)
}
