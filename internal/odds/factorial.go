package odds

import (
	"fmt"
	"math"
	"math/big"
)

const (
	// maxSmallFactorial is the largest n whose factorial is accumulated
	// directly in float64 and memoized. Every value up to here is exact.
	maxSmallFactorial = 20

	// maxDirectFactorial is the largest n whose factorial still fits in a
	// float64; 171! overflows to +Inf. Beyond it only LogFactorial and
	// FactorialBig remain meaningful.
	maxDirectFactorial = 170

	// maxBigFactorial bounds the exact big-integer path so a runaway input
	// cannot allocate without limit.
	maxBigFactorial = 300

	// stirlingCutover is the n above which LogFactorial switches from
	// log(n!) to Stirling's approximation. Tuning constant, not a contract.
	stirlingCutover = 20
)

// factorialValue is the internal tagged form of a factorial: either a
// direct float64 or an exact big integer. It is resolved to one numeric
// output at the API boundary.
type factorialValue struct {
	direct float64
	exact  *big.Int
}

func (v factorialValue) toFloat64() (float64, error) {
	if v.exact == nil {
		return v.direct, nil
	}
	f, _ := new(big.Float).SetInt(v.exact).Float64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("factorial: exact value overflows float64: %w", ErrNotRepresentable)
	}
	return f, nil
}

// Factorial returns n! as a float64. It fails for negative n and for n
// beyond the float64 range (use LogFactorial there). Small results are
// memoized; mid-range results go through the exact big-integer product and
// are rounded once on conversion.
func (e *Engine) Factorial(n int) (float64, error) {
	v, err := e.factorialTagged(n)
	if err != nil {
		return 0, err
	}
	return v.toFloat64()
}

// FactorialBig returns n! as an exact big integer. The input is capped so
// the result stays within a sane allocation budget.
func (e *Engine) FactorialBig(n int) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("factorial: negative input %d: %w", n, ErrInvalidArgument)
	}
	if n > maxBigFactorial {
		return nil, fmt.Errorf("factorial: input %d exceeds ceiling %d: %w",
			n, maxBigFactorial, ErrNotRepresentable)
	}
	if n <= 1 {
		return big.NewInt(1), nil
	}
	return rangeProduct(2, int64(n)), nil
}

func (e *Engine) factorialTagged(n int) (factorialValue, error) {
	if n < 0 {
		return factorialValue{}, fmt.Errorf("factorial: negative input %d: %w", n, ErrInvalidArgument)
	}
	if n > maxDirectFactorial {
		return factorialValue{}, fmt.Errorf("factorial: input %d overflows float64, use LogFactorial: %w",
			n, ErrNotRepresentable)
	}

	if n <= maxSmallFactorial {
		if cached, ok := e.factorials[n]; ok {
			return factorialValue{direct: cached}, nil
		}
		// Walk down to the highest memoized value, then fill upward so
		// repeated calls reuse every intermediate product.
		start := n
		for start > 0 {
			if _, ok := e.factorials[start-1]; ok {
				break
			}
			start--
		}
		acc := e.factorials[start-1]
		for i := start; i <= n; i++ {
			acc *= float64(i)
			e.factorials[i] = acc
		}
		return factorialValue{direct: e.factorials[n]}, nil
	}

	return factorialValue{exact: rangeProduct(2, int64(n))}, nil
}

// rangeProduct multiplies lo..hi inclusive by splitting the range in half,
// keeping operand sizes balanced so big.Int multiplications stay cheap.
func rangeProduct(lo, hi int64) *big.Int {
	if hi-lo < 8 {
		acc := big.NewInt(lo)
		for i := lo + 1; i <= hi; i++ {
			acc.Mul(acc, big.NewInt(i))
		}
		return acc
	}
	mid := (lo + hi) / 2
	return new(big.Int).Mul(rangeProduct(lo, mid), rangeProduct(mid+1, hi))
}

// LogFactorial returns ln(n!). Small inputs take the log of the memoized
// factorial; larger ones use Stirling's approximation with the 1/(12n)
// correction term, which keeps every probability computation at scale
// inside the float64 range.
func (e *Engine) LogFactorial(n int) (float64, error) {
	if n < 0 {
		return 0, fmt.Errorf("log factorial: negative input %d: %w", n, ErrInvalidArgument)
	}
	if cached, ok := e.logFactorials[n]; ok {
		return cached, nil
	}

	var result float64
	if n <= stirlingCutover {
		f, err := e.Factorial(n)
		if err != nil {
			return 0, err
		}
		result = math.Log(f)
	} else {
		fn := float64(n)
		result = fn*math.Log(fn) - fn + 0.5*math.Log(2*math.Pi*fn) + 1/(12*fn)
	}

	e.logFactorials[n] = result
	return result, nil
}
