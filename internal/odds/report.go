package odds

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MatchOdds describes the chance of matching exactly MatchCount numbers.
type MatchOdds struct {
	MatchCount     int     `json:"match_count"`
	SingleChance   float64 `json:"single_chance"`
	AdjustedChance float64 `json:"adjusted_chance"`
	Ratio          string  `json:"ratio"`
}

// Report is the full odds table for one (pool, pick, sets) configuration.
type Report struct {
	PoolSize               int         `json:"pool_size"`
	DrawSize               int         `json:"draw_size"`
	NumSets                int         `json:"num_sets"`
	TotalCombinations      float64     `json:"total_combinations"`
	TotalCombinationsExact string      `json:"total_combinations_exact"`
	PerMatch               []MatchOdds `json:"per_match"`
}

// Compute builds the odds table for drawing drawSize numbers out of a
// poolSize pool across numSets independent tickets. For each match count m
// in 0..drawSize the single-ticket chance is the hypergeometric probability
// of m overlaps between two independent drawSize-subsets of the pool, and
// the adjusted chance accounts for playing numSets tickets. The result is
// fully deterministic.
func (e *Engine) Compute(poolSize, drawSize, numSets int) (*Report, error) {
	if poolSize < 1 || drawSize < 1 || drawSize > poolSize {
		return nil, fmt.Errorf("compute odds: need 1 <= pick <= pool, got pool=%d pick=%d: %w",
			poolSize, drawSize, ErrInvalidArgument)
	}
	if numSets < 1 {
		return nil, fmt.Errorf("compute odds: numSets=%d below 1: %w", numSets, ErrInvalidArgument)
	}

	total, err := e.Combinations(poolSize, drawSize)
	if err != nil {
		return nil, fmt.Errorf("compute odds: %w", err)
	}
	exact, err := e.CombinationsExact(poolSize, drawSize)
	if err != nil {
		return nil, fmt.Errorf("compute odds: %w", err)
	}

	report := &Report{
		PoolSize:               poolSize,
		DrawSize:               drawSize,
		NumSets:                numSets,
		TotalCombinations:      total,
		TotalCombinationsExact: exact.String(),
		PerMatch:               make([]MatchOdds, 0, drawSize+1),
	}

	for m := 0; m <= drawSize; m++ {
		single, err := e.Hypergeometric(m, poolSize, drawSize, drawSize)
		if err != nil {
			return nil, fmt.Errorf("compute odds: match %d: %w", m, err)
		}
		adjusted, err := e.AdjustedProbability(single, numSets)
		if err != nil {
			return nil, fmt.Errorf("compute odds: match %d: %w", m, err)
		}
		report.PerMatch = append(report.PerMatch, MatchOdds{
			MatchCount:     m,
			SingleChance:   single,
			AdjustedChance: adjusted,
			Ratio:          formatRatio(single),
		})
	}

	return report, nil
}

// formatRatio renders a probability as a "1 in X" string. Decimal
// arithmetic keeps the rendered X stable instead of drifting with float
// formatting.
func formatRatio(p float64) string {
	if p <= 0 {
		return "0"
	}
	if p >= 1 {
		return "1 in 1"
	}

	x := decimal.NewFromInt(1).Div(decimal.NewFromFloat(p))
	if x.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		x = x.Round(0)
	} else {
		x = x.Round(2)
	}
	return "1 in " + x.String()
}
