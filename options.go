package pangraph

import "github.com/hupe1980/pangraph/codec"

type options struct {
	codec            codec.Codec
	logger           *Logger
	metricsCollector MetricsCollector
	strict           bool
}

func defaultOptions() options {
	return options{
		codec:            codec.Default,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		strict:           true,
	}
}

// Option configures load behavior.
//
// Options exist to avoid exploding the constructor surface
// (e.g. codec-specific Load variants).
type Option func(*options)

// WithCodec configures the codec used for snapshot headers.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures structured logging for load and snapshot
// operations. Queries themselves are never logged.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures operational metrics collection.
//
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithoutValidation disables the structural consistency check that
// rejects inputs whose links or paths reference segments with no
// sequence record. Useful for loading deliberately partial graphs.
func WithoutValidation() Option {
	return func(o *options) {
		o.strict = false
	}
}
