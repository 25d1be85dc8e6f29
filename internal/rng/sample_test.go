package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRangeUniformity(t *testing.T) {
	// Chi-squared test over a six-sided die. With rejection sampling the
	// statistic stays well under the threshold; a naive modulo draw over a
	// biased range would not.
	const trials = 600000
	m := New(20260830)

	counts := make(map[int]int)
	for i := 0; i < trials; i++ {
		counts[m.IntRange(1, 6)]++
	}

	require.Len(t, counts, 6)
	expected := float64(trials) / 6
	var chiSquared float64
	for face := 1; face <= 6; face++ {
		d := float64(counts[face]) - expected
		chiSquared += d * d / expected
	}
	// 5 degrees of freedom; 20.5 is far beyond the 99.9th percentile.
	assert.Less(t, chiSquared, 20.5, "die counts: %v", counts)
}

func TestIntRangeSwapsReversedBounds(t *testing.T) {
	m := New(1)
	for i := 0; i < 1000; i++ {
		v := m.IntRange(10, 3)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 10)
	}
}

func TestIntRangeSingleValue(t *testing.T) {
	m := New(1)
	require.Equal(t, 7, m.IntRange(7, 7))
}

func TestUniqueIntsProperties(t *testing.T) {
	m := New(5489)

	cases := []struct {
		name            string
		count, min, max int
	}{
		{"sparse rejection path", 6, 1, 49},
		{"dense shuffle path", 40, 1, 49},
		{"full range", 49, 1, 49},
		{"negative bounds", 5, -10, 10},
		{"reversed bounds", 5, 10, -10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.UniqueInts(tc.count, tc.min, tc.max)
			require.NoError(t, err)
			require.Len(t, got, tc.count)

			lo, hi := tc.min, tc.max
			if lo > hi {
				lo, hi = hi, lo
			}
			seen := make(map[int]struct{}, len(got))
			for _, v := range got {
				assert.GreaterOrEqual(t, v, lo)
				assert.LessOrEqual(t, v, hi)
				_, dup := seen[v]
				assert.False(t, dup, "duplicate value %d", v)
				seen[v] = struct{}{}
			}
		})
	}
}

func TestUniqueIntsCountExceedsRange(t *testing.T) {
	m := New(5489)
	_, err := m.UniqueInts(10, 1, 5)
	require.ErrorIs(t, err, ErrInsufficientRange)
}

func TestUniqueIntsZeroCount(t *testing.T) {
	m := New(5489)
	got, err := m.UniqueInts(0, 1, 49)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDrawSetDoesNotMutatePool(t *testing.T) {
	m := New(77)
	pool := []int{5, 12, 23, 31, 40, 44, 47, 8, 19}
	original := append([]int(nil), pool...)

	got, err := m.DrawSet(pool, 4)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, original, pool, "caller's pool was mutated")
}

func TestDrawSetValuesComeFromPool(t *testing.T) {
	m := New(77)
	pool := []int{5, 12, 23, 31, 40, 44}
	members := make(map[int]struct{}, len(pool))
	for _, v := range pool {
		members[v] = struct{}{}
	}

	for i := 0; i < 200; i++ {
		got, err := m.DrawSet(pool, 3)
		require.NoError(t, err)

		seen := make(map[int]struct{}, len(got))
		for _, v := range got {
			_, ok := members[v]
			require.True(t, ok, "value %d not in pool", v)
			_, dup := seen[v]
			require.False(t, dup, "duplicate value %d", v)
			seen[v] = struct{}{}
		}
	}
}

func TestDrawSetContiguousPool(t *testing.T) {
	m := New(123)
	pool := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	got, err := m.DrawSet(pool, 6)
	require.NoError(t, err)
	require.Len(t, got, 6)
	for _, v := range got {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 10)
	}
}

func TestDrawSetQuantityExceedsPool(t *testing.T) {
	m := New(1)
	_, err := m.DrawSet([]int{1, 2, 3}, 4)
	require.ErrorIs(t, err, ErrInsufficientRange)
}
