// Package diag carries scanner and parser diagnostics to a caller-supplied
// sink.
package diag

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "error"
	}
}

// Position is a location in the source. Line and Column are zero-based;
// Column counts characters, not bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line+1, p.Column+1)
}

// Range is a half-open byte span [Start, End) of the source.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Pos      Position
	Severity Severity
	Message  string
	Range    Range
}

// Err converts d to an error value.
func (d Diagnostic) Err() error {
	return &Error{Diagnostic: d}
}

// Error is a Diagnostic used as a Go error.
type Error struct {
	Diagnostic
}

func (e *Error) Error() string {
	return fmt.Sprintf("yaml: %s at %s", e.Message, e.Pos)
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// LogSink writes diagnostics to a go-kit logger.
type LogSink struct {
	logger log.Logger
	name   string
}

// NewLogSink returns a sink logging to logger. name identifies the input
// (a file name, or "-" for stdin) and may be empty.
func NewLogSink(logger log.Logger, name string) *LogSink {
	return &LogSink{logger: logger, name: name}
}

func (s *LogSink) Report(d Diagnostic) {
	var l log.Logger
	switch d.Severity {
	case SeverityWarning:
		l = level.Warn(s.logger)
	case SeverityNote:
		l = level.Info(s.logger)
	default:
		l = level.Error(s.logger)
	}
	if s.name != "" {
		l = log.With(l, "input", s.name)
	}
	l.Log("msg", d.Message, "line", d.Pos.Line+1, "col", d.Pos.Column+1, "offset", d.Pos.Offset)
}

// Collector records every diagnostic it receives.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Err returns the first collected diagnostic as an error, or nil.
func (c *Collector) Err() error {
	if len(c.Diagnostics) == 0 {
		return nil
	}
	return c.Diagnostics[0].Err()
}

// Tee forwards each diagnostic to all sinks.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		for _, s := range sinks {
			s.Report(d)
		}
	})
}
