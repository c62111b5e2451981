package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/transposer/pkg/domain"
	"github.com/aretw0/transposer/pkg/ports"
)

// DefaultWorkers bounds parallel destinations when no limit is configured.
const DefaultWorkers = 4

// DefaultLockTTL is how long a piece lock is held before it expires on its own.
const DefaultLockTTL = 30 * time.Second

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithSink configures where results are written. Without a sink results are only reported.
func WithSink(sink ports.Sink) Option {
	return func(r *Runner) {
		r.Sink = sink
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithWorkers sets how many destinations are transposed concurrently.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.Workers = n
	}
}

// WithFailFast aborts the whole run on the first failing destination.
func WithFailFast(failFast bool) Option {
	return func(r *Runner) {
		r.FailFast = failFast
	}
}

// WithDryRun computes results without writing them to the sink.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.DryRun = dryRun
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.Hooks = hooks
	}
}

// WithLocker serializes runs of the same piece across processes.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(r *Runner) {
		r.Locker = locker
		r.LockTTL = ttl
	}
}
