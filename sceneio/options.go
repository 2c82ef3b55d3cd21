package sceneio

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type options struct {
	sequential   bool
	workers      int
	flipTexcoord bool
	logger       *log.Logger
}

// Option configures a load or save call.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		flipTexcoord: true,
		logger:       log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSequential loads and saves resources on the calling goroutine. Use
// it when the caller is already running inside a worker pool.
func WithSequential() Option {
	return func(o *options) { o.sequential = true }
}

// WithWorkers bounds the number of goroutines resolving resources. Zero
// means one per CPU.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithFlipTexcoord sets whether the v texture coordinate is mirrored when
// reading and writing mesh files. The default is true.
func WithFlipTexcoord(flip bool) Option {
	return func(o *options) { o.flipTexcoord = flip }
}

// WithLogger sends diagnostics to logger instead of the standard logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// operation returns a log entry tagged with a fresh operation id.
func (o *options) operation(op, path string) *log.Entry {
	return o.logger.WithFields(log.Fields{
		"op":   uuid.NewString(),
		"kind": op,
		"path": path,
	})
}
