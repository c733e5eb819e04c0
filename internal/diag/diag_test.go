package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(log.NewLogfmtLogger(&buf), "config.yaml")

	sink.Report(Diagnostic{
		Pos:     Position{Offset: 7, Line: 1, Column: 2},
		Message: "unexpected token",
	})

	out := buf.String()
	assert.Contains(t, out, "level=error")
	assert.Contains(t, out, `msg="unexpected token"`)
	assert.Contains(t, out, "input=config.yaml")
	assert.Contains(t, out, "line=2")
	assert.Contains(t, out, "col=3")
	assert.Contains(t, out, "offset=7")
}

func TestLogSinkSeverity(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(log.NewLogfmtLogger(&buf), "")
	sink.Report(Diagnostic{Severity: SeverityWarning, Message: "w"})
	assert.True(t, strings.HasPrefix(buf.String(), "level=warn"), buf.String())
	assert.NotContains(t, buf.String(), "input=")
}

func TestCollector(t *testing.T) {
	var c Collector
	require.NoError(t, c.Err())

	c.Report(Diagnostic{Message: "first", Pos: Position{Line: 0, Column: 4}})
	c.Report(Diagnostic{Message: "second"})

	require.Len(t, c.Diagnostics, 2)
	err := c.Err()
	require.Error(t, err)
	assert.Equal(t, "yaml: first at line 1, column 5", err.Error())

	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "first", derr.Message)
}

func TestTee(t *testing.T) {
	var a, b Collector
	Tee(&a, &b, Discard).Report(Diagnostic{Message: "x"})
	assert.Len(t, a.Diagnostics, 1)
	assert.Len(t, b.Diagnostics, 1)
}
