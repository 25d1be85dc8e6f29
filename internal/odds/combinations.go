package odds

import (
	"fmt"
	"math"
	"math/big"
)

// logCombThreshold is the n above which Combinations abandons direct
// factorial division for the log-domain identity. Tuning constant.
const logCombThreshold = 50

// Combinations returns C(n, r), the number of r-element subsets of an
// n-element set, as a float64. r > n yields 0; negative inputs fail.
func (e *Engine) Combinations(n, r int) (float64, error) {
	if n < 0 || r < 0 {
		return 0, fmt.Errorf("combinations: negative input n=%d r=%d: %w", n, r, ErrInvalidArgument)
	}
	if r > n {
		return 0, nil
	}
	if r == 0 || r == n {
		return 1, nil
	}
	if r == 1 || r == n-1 {
		return float64(n), nil
	}
	// C(n, r) == C(n, n-r); work with the smaller side.
	if r > n-r {
		r = n - r
	}

	key := combKey{n, r}
	if cached, ok := e.combinations[key]; ok {
		return cached, nil
	}

	var result float64
	if n > logCombThreshold {
		logC, err := e.logCombinations(n, r)
		if err != nil {
			return 0, err
		}
		result = math.Exp(logC)
	} else {
		direct, err := e.combinationsDirect(n, r)
		if err != nil || math.IsNaN(direct) || math.IsInf(direct, 0) {
			// The direct ratio failed numerically; the log identity is
			// the source of truth at scale.
			logC, logErr := e.logCombinations(n, r)
			if logErr != nil {
				return 0, fmt.Errorf("combinations: C(%d, %d): %w", n, r, logErr)
			}
			direct = math.Exp(logC)
		}
		result = direct
	}

	e.combinations[key] = result
	return result, nil
}

func (e *Engine) combinationsDirect(n, r int) (float64, error) {
	fn, err := e.Factorial(n)
	if err != nil {
		return 0, err
	}
	fr, err := e.Factorial(r)
	if err != nil {
		return 0, err
	}
	fnr, err := e.Factorial(n - r)
	if err != nil {
		return 0, err
	}
	return fn / (fr * fnr), nil
}

// logCombinations returns ln C(n, r) for 0 <= r <= n.
func (e *Engine) logCombinations(n, r int) (float64, error) {
	lfn, err := e.LogFactorial(n)
	if err != nil {
		return 0, err
	}
	lfr, err := e.LogFactorial(r)
	if err != nil {
		return 0, err
	}
	lfnr, err := e.LogFactorial(n - r)
	if err != nil {
		return 0, err
	}
	return lfn - lfr - lfnr, nil
}

// CombinationsExact returns C(n, r) as an exact big integer via the
// multiplicative formula, for callers that need the count without any
// floating-point rounding.
func (e *Engine) CombinationsExact(n, r int) (*big.Int, error) {
	if n < 0 || r < 0 {
		return nil, fmt.Errorf("combinations: negative input n=%d r=%d: %w", n, r, ErrInvalidArgument)
	}
	if r > n {
		return big.NewInt(0), nil
	}
	if r > n-r {
		r = n - r
	}

	result := big.NewInt(1)
	for i := 0; i < r; i++ {
		result.Mul(result, big.NewInt(int64(n-i)))
		result.Div(result, big.NewInt(int64(i+1)))
	}
	return result, nil
}
