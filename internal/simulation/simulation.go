// Package simulation runs lottery match hunts: repeated independent draws
// against a fixed target ticket until a required match count is hit. Runs
// are cooperatively interruptible through context cancellation, checked
// between fixed-size batches so a host can stop a long hunt promptly.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lottokit/draw-engine/internal/config"
	"github.com/lottokit/draw-engine/internal/rng"
)

const defaultBatchSize = 1000

// Options configures one match hunt.
type Options struct {
	Game       config.GameConfig
	Target     []int // the winning set the hunt tries to match
	MatchCount int   // required overlap; 0 means a full match
	BatchSize  int   // draws between cancellation checks
	MaxDraws   uint64

	// OnProgress, when set, is invoked after every batch with the draw
	// count so far and the best match seen.
	OnProgress func(draws uint64, bestMatch int)
}

// Result summarizes a finished or aborted hunt.
type Result struct {
	Draws     uint64        `json:"draws"`
	Matched   bool          `json:"matched"`
	BestMatch int           `json:"best_match"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Runner owns the RNG for a sequence of hunts. Not safe for concurrent
// use; parallel exploration means one Runner per goroutine.
type Runner struct {
	rng  *rng.MT19937
	opts Options
}

// NewRunner validates the options and prepares a seeded runner.
func NewRunner(seed uint32, opts Options) (*Runner, error) {
	if err := validate(&opts); err != nil {
		return nil, err
	}
	return &Runner{rng: rng.New(seed), opts: opts}, nil
}

func validate(opts *Options) error {
	game := opts.Game
	if game.PoolSize < 1 || game.DrawSize < 1 || game.DrawSize > game.PoolSize {
		return fmt.Errorf("simulation: invalid game %s: pool=%d draw=%d",
			game.Name, game.PoolSize, game.DrawSize)
	}
	if len(opts.Target) != game.DrawSize {
		return fmt.Errorf("simulation: target has %d numbers, game %s draws %d",
			len(opts.Target), game.Name, game.DrawSize)
	}
	seen := make(map[int]struct{}, len(opts.Target))
	for _, n := range opts.Target {
		if n < 1 || n > game.PoolSize {
			return fmt.Errorf("simulation: target number %d outside 1..%d", n, game.PoolSize)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("simulation: duplicate target number %d", n)
		}
		seen[n] = struct{}{}
	}
	if opts.MatchCount == 0 {
		opts.MatchCount = game.DrawSize
	}
	if opts.MatchCount < 1 || opts.MatchCount > game.DrawSize {
		return fmt.Errorf("simulation: match count %d outside 1..%d", opts.MatchCount, game.DrawSize)
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	return nil
}

// Run hunts until the target match is hit, MaxDraws is exhausted, or ctx
// is cancelled. Cancellation is not an error; the partial result reports
// how far the hunt got.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	target := make(map[int]struct{}, len(r.opts.Target))
	for _, n := range r.opts.Target {
		target[n] = struct{}{}
	}

	start := time.Now()
	result := &Result{}

	for {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			slog.Debug("simulation cancelled",
				"game", r.opts.Game.Name, "draws", result.Draws, "best_match", result.BestMatch)
			return result, nil
		default:
		}

		for i := 0; i < r.opts.BatchSize; i++ {
			if r.opts.MaxDraws > 0 && result.Draws >= r.opts.MaxDraws {
				result.Elapsed = time.Since(start)
				return result, nil
			}

			numbers, err := r.rng.UniqueInts(r.opts.Game.DrawSize, 1, r.opts.Game.PoolSize)
			if err != nil {
				return nil, fmt.Errorf("simulation: draw %d: %w", result.Draws+1, err)
			}
			result.Draws++

			matches := 0
			for _, n := range numbers {
				if _, ok := target[n]; ok {
					matches++
				}
			}
			if matches > result.BestMatch {
				result.BestMatch = matches
			}
			if matches >= r.opts.MatchCount {
				result.Matched = true
				result.Elapsed = time.Since(start)
				return result, nil
			}
		}

		if r.opts.OnProgress != nil {
			r.opts.OnProgress(result.Draws, result.BestMatch)
		}
	}
}
