package rng

import (
	"errors"
	"fmt"
)

// ErrInsufficientRange indicates more distinct values were requested than
// the range or pool can supply.
var ErrInsufficientRange = errors.New("not enough distinct values in range")

// shuffleDensity is the count/range ratio above which UniqueInts switches
// from rejection sampling to a partial Fisher-Yates shuffle. Rejection
// collisions grow too fast once a third of the range is requested. The
// exact ratio is a tuning constant, not a contract.
const shuffleDensity = 3

// IntRange returns a uniform integer in [min, max], both ends inclusive.
// Reversed bounds are swapped. Rejection sampling keeps the distribution
// exactly uniform even when the range does not divide 2^32.
func (m *MT19937) IntRange(min, max int) int {
	if min > max {
		min, max = max, min
	}
	rangeSize := uint64(max-min) + 1
	if rangeSize == 1 {
		return min
	}

	// Largest multiple of rangeSize that fits in 32 bits; draws at or
	// above it would skew the low residues and are discarded.
	limit := (uint64(1) << 32) / rangeSize * rangeSize
	for {
		r := uint64(m.Uint32())
		if r < limit {
			return min + int(r%rangeSize)
		}
	}
}

// UniqueInts draws count distinct integers from [min, max] inclusive, in
// random order. It fails when count exceeds the range size.
//
// Dense requests (more than a third of the range) materialize the range and
// partially shuffle it; sparse requests over large ranges reject duplicates
// instead, avoiding the full allocation.
func (m *MT19937) UniqueInts(count, min, max int) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("unique ints: negative count %d", count)
	}
	if min > max {
		min, max = max, min
	}
	rangeSize := max - min + 1
	if count > rangeSize {
		return nil, fmt.Errorf("unique ints: count %d exceeds range [%d, %d]: %w",
			count, min, max, ErrInsufficientRange)
	}
	if count == 0 {
		return []int{}, nil
	}

	if count*shuffleDensity > rangeSize {
		values := make([]int, rangeSize)
		for i := range values {
			values[i] = min + i
		}
		return m.shuffleTail(values, count), nil
	}

	result := make([]int, 0, count)
	seen := make(map[int]struct{}, count)
	for len(result) < count {
		v := m.IntRange(min, max)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result, nil
}

// DrawSet picks quantity distinct numbers from the given pool. The pool is
// never mutated; the draw operates on a copy. A contiguous 1..n pool is
// recognized and delegated to UniqueInts so the cheap sparse path applies.
func (m *MT19937) DrawSet(pool []int, quantity int) ([]int, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("draw set: negative quantity %d", quantity)
	}
	if quantity > len(pool) {
		return nil, fmt.Errorf("draw set: quantity %d exceeds pool size %d: %w",
			quantity, len(pool), ErrInsufficientRange)
	}
	if quantity == 0 {
		return []int{}, nil
	}

	if isContiguousFromOne(pool) {
		return m.UniqueInts(quantity, 1, len(pool))
	}

	scratch := make([]int, len(pool))
	copy(scratch, pool)
	return m.shuffleTail(scratch, quantity), nil
}

// shuffleTail performs a partial Fisher-Yates over values, shuffling only
// the last count positions, and returns that tail. values is consumed.
func (m *MT19937) shuffleTail(values []int, count int) []int {
	n := len(values)
	for i := n - 1; i >= n-count; i-- {
		j := m.IntRange(0, i)
		values[i], values[j] = values[j], values[i]
	}
	return values[n-count:]
}

func isContiguousFromOne(pool []int) bool {
	for i, v := range pool {
		if v != i+1 {
			return false
		}
	}
	return len(pool) > 0
}
