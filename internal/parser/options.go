package parser

import (
	"github.com/go-kit/log"

	"github.com/shapestone/yamlstream/internal/diag"
	"github.com/shapestone/yamlstream/internal/tokenizer"
)

type config struct {
	sink   diag.Sink
	logger log.Logger
}

// Option configures a Stream.
type Option func(*config)

// WithSink sets the sink receiving the first diagnostic of the stream.
func WithSink(sink diag.Sink) Option {
	return func(c *config) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// WithLogger sets a logger for debug events of the stream and its scanner.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newConfig(opts []Option) config {
	c := config{sink: diag.Discard, logger: log.NewNopLogger()}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func (c config) scannerOptions() []tokenizer.Option {
	return []tokenizer.Option{tokenizer.WithSink(c.sink), tokenizer.WithLogger(c.logger)}
}
