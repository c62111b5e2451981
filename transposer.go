package transposer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/transposer/internal/logging"
	"github.com/aretw0/transposer/pkg/adapters/memory"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/aretw0/transposer/pkg/ports"
	"github.com/aretw0/transposer/pkg/runner"
)

// Version is the release version reported by the CLI and the servers.
const Version = "0.3.0"

// Engine is the high-level entry point for the transposer library.
// It loads a piece from a Source, asks the Enumerator for destination keys
// of the piece's mode and runs the batch Runner against a Sink.
type Engine struct {
	source     ports.Source
	enumerator ports.DestinationEnumerator
	sink       ports.Sink
	runnerOpts []runner.Option
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSource sets where pieces are loaded from.
func WithSource(s ports.Source) Option {
	return func(e *Engine) {
		e.source = s
	}
}

// WithEnumerator sets where destination keys come from (default: every conventional key).
func WithEnumerator(en ports.DestinationEnumerator) Option {
	return func(e *Engine) {
		e.enumerator = en
	}
}

// WithSink sets where results are written. Without one, results are only returned.
func WithSink(s ports.Sink) Option {
	return func(e *Engine) {
		e.sink = s
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRunnerOptions passes options through to the batch runner.
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(e *Engine) {
		e.runnerOpts = append(e.runnerOpts, opts...)
	}
}

// New creates an Engine. A Source is required.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.source == nil {
		return nil, errors.New("transposer: a source is required")
	}
	if e.enumerator == nil {
		e.enumerator = memory.NewEnumerator()
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	return e, nil
}

// Run transposes one piece into every destination of its mode.
func (e *Engine) Run(ctx context.Context, piece string) (*runner.Report, error) {
	a, err := e.source.Load(ctx, piece)
	if err != nil {
		return nil, err
	}

	dests, err := e.enumerator.Destinations(ctx, a.Key.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate destinations: %w", err)
	}
	e.logger.Info("Transposing piece", "piece", piece, "key", a.Key.String(), "destinations", len(dests))

	opts := append([]runner.Option{runner.WithLogger(e.logger)}, e.runnerOpts...)
	if e.sink != nil {
		opts = append(opts, runner.WithSink(e.sink))
	}
	return runner.NewRunner(opts...).Run(ctx, a, dests)
}

// TransposeText rewrites the note annotations of text from one key into another.
// It also reports the annotation scan, so callers can warn about an unmatched "(".
func TransposeText(text string, from, to domain.Key) (string, domain.LocateResult, error) {
	origScale, err := from.Scale()
	if err != nil {
		return "", domain.LocateResult{}, err
	}
	destScale, err := to.Scale()
	if err != nil {
		return "", domain.LocateResult{}, err
	}

	loc := domain.LocateAnnotations(text)
	out, err := domain.Transpose(loc.Annotations, domain.BuildKeyMap(origScale, destScale), text)
	if err != nil {
		return "", loc, err
	}
	return out, loc, nil
}
