package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/transposer/internal/logging"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/aretw0/transposer/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// Runner transposes an analysis into a set of destination keys.
type Runner struct {
	// Sink receives every successful result. If nil, results are only reported.
	Sink ports.Sink

	// Logger is used for run diagnostics.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Hooks are invoked once per destination and on truncated scans.
	Hooks domain.LifecycleHooks

	// Workers bounds concurrent destinations. Values below 1 mean DefaultWorkers.
	Workers int

	// FailFast cancels the remaining destinations after the first failure.
	FailFast bool

	// DryRun skips the sink.
	DryRun bool

	// Locker, when set, holds a lock on the piece for the duration of the run.
	Locker  ports.DistributedLocker
	LockTTL time.Duration
}

// Failure records a destination that could not be transposed or written.
type Failure struct {
	Destination domain.Destination
	Err         error
}

// Report summarizes a run. Results and Failures follow the order of the destinations given.
type Report struct {
	Piece       string
	Original    domain.Key
	Annotations int
	Truncated   bool
	UnmatchedAt int
	Results     []ports.Result
	Failures    []Failure
}

// NewRunner creates a Runner with the given options.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Workers: DefaultWorkers,
		LockTTL: DefaultLockTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Run transposes a into every destination.
//
// An original key that cannot be built fails the whole run. Per-destination errors
// are collected in the report, unless FailFast is set, in which case the first one
// is returned and the remaining destinations are cancelled.
func (r *Runner) Run(ctx context.Context, a *domain.Analysis, dests []domain.Destination) (*Report, error) {
	if a == nil {
		return nil, errors.New("runner: nil analysis")
	}

	origScale, err := a.Key.Scale()
	if err != nil {
		return nil, fmt.Errorf("original key %s: %w", a.Key, err)
	}

	loc := domain.LocateAnnotations(a.Body)
	report := &Report{
		Piece:       a.Piece,
		Original:    a.Key,
		Annotations: len(loc.Annotations),
		Truncated:   loc.Truncated,
		UnmatchedAt: loc.UnmatchedAt,
	}
	if loc.Truncated {
		r.Logger.Warn("Unmatched parenthesis stopped annotation scan",
			"piece", a.Piece, "offset", loc.UnmatchedAt, "located", len(loc.Annotations))
		if r.Hooks.OnTruncated != nil {
			r.Hooks.OnTruncated(ctx, &domain.TruncatedEvent{
				EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventTruncated, Piece: a.Piece},
				UnmatchedAt: loc.UnmatchedAt,
			})
		}
	}

	if r.Locker != nil && r.Sink != nil && !r.DryRun {
		unlock, err := r.Locker.Lock(ctx, a.Piece, r.LockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock piece %q: %w", a.Piece, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				r.Logger.Warn("Failed to release piece lock", "piece", a.Piece, "err", err)
			}
		}()
	}

	workers := r.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	results := make([]*ports.Result, len(dests))
	errs := make([]error, len(dests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range dests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			res, err := r.transposeOne(gctx, a, origScale, loc.Annotations, d)
			ev := &domain.TransposeEvent{
				EventBase:   domain.EventBase{Timestamp: start, Type: domain.EventTranspose, Piece: a.Piece},
				Destination: d,
				Annotations: len(loc.Annotations),
				Duration:    time.Since(start),
				Err:         err,
			}

			if err != nil {
				errs[i] = err
				ev.Type = domain.EventFailure
				r.Logger.Error("Transposition failed", "piece", a.Piece, "destination", d.Name, "err", err)
				if r.Hooks.OnFailure != nil {
					r.Hooks.OnFailure(gctx, ev)
				}
				if r.FailFast {
					return fmt.Errorf("destination %s: %w", d.Name, err)
				}
				return nil
			}

			results[i] = res
			r.Logger.Debug("Transposed", "piece", a.Piece, "destination", d.Name, "duration", ev.Duration)
			if r.Hooks.OnTranspose != nil {
				r.Hooks.OnTranspose(gctx, ev)
			}
			return nil
		})
	}
	waitErr := g.Wait()

	for i, d := range dests {
		switch {
		case results[i] != nil:
			report.Results = append(report.Results, *results[i])
		case errs[i] != nil:
			report.Failures = append(report.Failures, Failure{Destination: d, Err: errs[i]})
		}
	}

	if waitErr != nil {
		return report, waitErr
	}
	return report, nil
}

func (r *Runner) transposeOne(ctx context.Context, a *domain.Analysis, origScale domain.Scale, anns []domain.Annotation, d domain.Destination) (*ports.Result, error) {
	destScale, err := d.Key.Scale()
	if err != nil {
		return nil, err
	}

	km := domain.BuildKeyMap(origScale, destScale)
	text, err := domain.Transpose(anns, km, a.Body)
	if err != nil {
		return nil, err
	}

	res := &ports.Result{Piece: a.Piece, Destination: d, Text: text}
	if r.Sink != nil && !r.DryRun {
		if err := r.Sink.Write(ctx, *res); err != nil {
			return nil, fmt.Errorf("failed to write result: %w", err)
		}
	}
	return res, nil
}
