package lang

import (
	"io"

	"github.com/ardnew/tagex/log"
)

// DefaultMaxRenderDepth is the default bound on nested-tag recursion.
// Nested tags inside argument strings re-enter the renderer; a tag from
// hostile input could otherwise recurse without limit.
const DefaultMaxRenderDepth = 100

// Option configures an [Engine] at construction or a single call to
// [Engine.Render].
type Option func(*options)

// options holds the resolved engine configuration.
type options struct {
	logger   log.Logger
	maxDepth int
	strict   bool
}

// defaultOptions returns the baseline configuration: lenient resolution,
// default recursion bound, discarded logs.
func defaultOptions() options {
	return options{
		logger:   log.Make(io.Discard),
		maxDepth: DefaultMaxRenderDepth,
		strict:   false,
	}
}

// WithStrict controls unresolved-tag handling. When strict, any tag that
// fails to evaluate aborts the render and surfaces the failure; when lenient
// (the default), a failing tag renders as the empty string and processing
// continues.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithMaxDepth overrides [DefaultMaxRenderDepth] for nested-tag recursion.
// Values less than 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth >= 1 {
			o.maxDepth = depth
		}
	}
}

// WithLogger routes engine debug logging to the given logger.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}
