package odds

import (
	"fmt"
	"math"
)

// Log-domain cutovers for the hypergeometric probability. Below these the
// direct combination ratio is exact enough and cheaper. Tuning constants.
const (
	hyperLogPopulation = 100
	hyperLogSuccesses  = 50
	hyperLogDraws      = 50
)

// Hypergeometric returns the probability of exactly k successes when
// drawing a sample of size draws, without replacement, from a population
// of popSize containing successes marked items.
//
// Structurally impossible combinations (k > draws, k > successes, or more
// failures requested than exist) return 0 without error.
func (e *Engine) Hypergeometric(k, popSize, successes, draws int) (float64, error) {
	if k < 0 || popSize < 0 || successes < 0 || draws < 0 {
		return 0, fmt.Errorf("hypergeometric: negative input k=%d N=%d K=%d n=%d: %w",
			k, popSize, successes, draws, ErrInvalidArgument)
	}
	if successes > popSize {
		return 0, fmt.Errorf("hypergeometric: successes %d exceed population %d: %w",
			successes, popSize, ErrInvalidArgument)
	}
	if draws > popSize {
		return 0, fmt.Errorf("hypergeometric: sample %d exceeds population %d: %w",
			draws, popSize, ErrInvalidArgument)
	}
	if k > draws || k > successes || draws-k > popSize-successes {
		return 0, nil
	}

	key := hyperKey{k, popSize, successes, draws}
	if cached, ok := e.hypergeometric[key]; ok {
		return cached, nil
	}

	var (
		p   float64
		err error
	)
	if popSize > hyperLogPopulation || successes > hyperLogSuccesses || draws > hyperLogDraws {
		p, err = e.hypergeometricLog(k, popSize, successes, draws)
	} else {
		p, err = e.hypergeometricDirect(k, popSize, successes, draws)
		if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
			p, err = e.hypergeometricLog(k, popSize, successes, draws)
		}
	}
	if err != nil {
		return 0, fmt.Errorf("hypergeometric: P(k=%d | N=%d, K=%d, n=%d): %w",
			k, popSize, successes, draws, err)
	}

	e.hypergeometric[key] = p
	return p, nil
}

func (e *Engine) hypergeometricDirect(k, popSize, successes, draws int) (float64, error) {
	hits, err := e.Combinations(successes, k)
	if err != nil {
		return 0, err
	}
	misses, err := e.Combinations(popSize-successes, draws-k)
	if err != nil {
		return 0, err
	}
	total, err := e.Combinations(popSize, draws)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, fmt.Errorf("zero total combinations C(%d, %d)", popSize, draws)
	}
	return hits * misses / total, nil
}

// hypergeometricLog evaluates P = exp(lnC(K,k) + lnC(N-K,n-k) - lnC(N,n)).
// It never materializes a factorial, so it stays accurate at any scale and
// serves as the fallback when the direct ratio misbehaves.
func (e *Engine) hypergeometricLog(k, popSize, successes, draws int) (float64, error) {
	logHits, err := e.logCombinations(successes, k)
	if err != nil {
		return 0, err
	}
	logMisses, err := e.logCombinations(popSize-successes, draws-k)
	if err != nil {
		return 0, err
	}
	logTotal, err := e.logCombinations(popSize, draws)
	if err != nil {
		return 0, err
	}

	p := math.Exp(logHits + logMisses - logTotal)
	if math.IsNaN(p) {
		return 0, fmt.Errorf("log-domain result is NaN")
	}
	// Stirling rounding can nudge the result a hair past 1.
	return math.Min(p, 1), nil
}

// AdjustedProbability returns the probability of at least one success
// across numSets independent trials, each succeeding with probability p.
func (e *Engine) AdjustedProbability(p float64, numSets int) (float64, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("adjusted probability: p=%v outside [0, 1]: %w", p, ErrInvalidArgument)
	}
	if numSets < 1 {
		return 0, fmt.Errorf("adjusted probability: numSets=%d below 1: %w", numSets, ErrInvalidArgument)
	}
	if numSets == 1 {
		return p, nil
	}
	return 1 - math.Pow(1-p, float64(numSets)), nil
}
