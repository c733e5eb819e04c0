package tokenizer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDump tests the token listing format
func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, []byte("a: b")))

	want := `Stream-Start [0,0) ""
Block-Mapping-Start [0,0) ""
Key [0,0) ""
Scalar [0,1) "a"
Value [1,2) ":"
Scalar [3,4) "b"
Block-End [4,4) ""
Stream-End [4,4) ""
`
	assert.Equal(t, want, buf.String())
}

// TestDump_BlockScalarValue tests that decoded block scalars are shown
func TestDump_BlockScalarValue(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, []byte("|\n  x\n")))
	assert.Contains(t, buf.String(), `Block-Scalar [0,6) "|\n  x\n" value="x\n"`)
}

// TestDumpColors tests that every part of a line goes through the colors
func TestDumpColors(t *testing.T) {
	wrap := func(tag string) func(a ...any) string {
		return func(a ...any) string { return "<" + tag + ">" + fmt.Sprint(a...) + "</" + tag + ">" }
	}
	colors := Colors{Kind: wrap("k"), Value: wrap("v")}

	var buf bytes.Buffer
	require.NoError(t, DumpColors(&buf, []byte("|\n  x\n"), colors))
	assert.Contains(t, buf.String(), `<k>Block-Scalar</k> [0,6) <v>"|\n  x\n"</v> value=<v>"x\n"</v>`)

	// Without colors the lines match Dump.
	var plain bytes.Buffer
	require.NoError(t, Dump(&plain, []byte("[a]")))
	var lines []string
	for _, tok := range Scan([]byte("[a]")) {
		lines = append(lines, FormatToken(tok, []byte("[a]"), Colors{})+"\n")
	}
	assert.Equal(t, strings.Join(lines, ""), plain.String())
}

// TestDump_Error tests that the tokens before an error are written
func TestDump_Error(t *testing.T) {
	var buf bytes.Buffer
	err := Dump(&buf, []byte("a: \"open"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected quote at end of scalar")
	assert.Contains(t, err.Error(), "line 1, column 4")
	assert.Contains(t, buf.String(), "Stream-Start")
}

// TestValidate tests the validation shortcut
func TestValidate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"a: b", true},
		{"- [1, 2]\n- {x: y}\n", true},
		{"", true},
		{`"open`, false},
		{"`tick", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Validate([]byte(tt.input)), "Validate(%q)", tt.input)
	}
}
