package operator

import (
	"github.com/go-logr/logr"

	"github.com/l7mp/opdispatch/pkg/compiler"
)

// Option configures a table.
type Option func(*options)

type options struct {
	log      logr.Logger
	compiler *compiler.Compiler
	guard    bool
}

// WithLogger sets the logger of the table. The default discards all logs.
func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithCompiler sets the compiler used on cache misses. The default is a compiler logging to the
// table's logger.
func WithCompiler(c *compiler.Compiler) Option {
	return func(o *options) { o.compiler = c }
}

// WithBuildGuard makes concurrent misses on the same key wait for a single build.
func WithBuildGuard() Option {
	return func(o *options) { o.guard = true }
}

func newOptions(opts []Option) options {
	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.compiler == nil {
		o.compiler = compiler.New(o.log.WithName("compiler"))
	}
	return o
}
