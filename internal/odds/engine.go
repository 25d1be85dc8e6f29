// Package odds computes exact and numerically stable combinatorial
// probabilities for "match m of K drawn from N" problems: factorials,
// binomial coefficients and the hypergeometric distribution, adjusted for
// any number of independent attempts.
//
// Large inputs are routed through the logarithmic domain (Stirling's
// approximation) so no oversized intermediate factorial is ever
// materialized; exact combination counts are available separately through
// math/big. Intermediate results are memoized per Engine instance, so each
// goroutine should own its own Engine.
package odds

import (
	"errors"
)

// ErrInvalidArgument indicates a negative or out-of-domain parameter.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotRepresentable indicates a result too large for its requested form.
var ErrNotRepresentable = errors.New("result not representable")

type combKey struct {
	n, r int
}

type hyperKey struct {
	k, popSize, successes, draws int
}

// Engine memoizes factorial, combination and hypergeometric results. The
// caches are pure performance aids: clearing them never changes any result.
// An Engine is not safe for concurrent use.
type Engine struct {
	factorials     map[int]float64
	logFactorials  map[int]float64
	combinations   map[combKey]float64
	hypergeometric map[hyperKey]float64
}

// New returns an Engine with the trivial factorial base cases pre-seeded.
func New() *Engine {
	e := &Engine{}
	e.reset()
	return e
}

// ClearCaches drops all memoized results except 0! and 1!. Safe to call at
// any time; only subsequent latency is affected, never correctness.
func (e *Engine) ClearCaches() {
	e.reset()
}

func (e *Engine) reset() {
	e.factorials = map[int]float64{0: 1, 1: 1}
	e.logFactorials = make(map[int]float64)
	e.combinations = make(map[combKey]float64)
	e.hypergeometric = make(map[hyperKey]float64)
}
