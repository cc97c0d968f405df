package lookup

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aristath/tickerview/internal/analysis"
)

// Fetcher retrieves the analysis of a symbol.
type Fetcher interface {
	Analyze(ctx context.Context, symbol string) (*analysis.Result, error)
}

// Runner executes Fetch effects.
type Runner struct {
	fetcher Fetcher
	log     zerolog.Logger
}

// NewRunner creates a runner backed by fetcher.
func NewRunner(fetcher Fetcher, log zerolog.Logger) *Runner {
	return &Runner{
		fetcher: fetcher,
		log:     log.With().Str("component", "lookup").Logger(),
	}
}

// Run performs the request described by f.
func (r *Runner) Run(ctx context.Context, f Fetch) FetchCompleted {
	result, err := r.fetcher.Analyze(ctx, f.Symbol)
	if err != nil {
		r.log.Debug().
			Err(err).
			Str("symbol", f.Symbol).
			Uint64("seq", f.Seq).
			Str("kind", Classify(err).String()).
			Msg("Lookup failed")
	}
	return FetchCompleted{Seq: f.Seq, Result: result, Err: err}
}

// Settle executes effects synchronously until the state machine stops
// asking for requests, and returns the resulting state.
func (r *Runner) Settle(ctx context.Context, s State, f *Fetch) State {
	for f != nil {
		s, f = Transition(s, r.Run(ctx, *f))
	}
	return s
}
