package odds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinationsKnownValues(t *testing.T) {
	e := New()

	cases := []struct {
		n, r int
		want float64
	}{
		{5, 2, 10},
		{10, 3, 120},
		{49, 6, 13983816},
		{52, 6, 20358520},
	}
	for _, tc := range cases {
		got, err := e.Combinations(tc.n, tc.r)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1.0, "C(%d, %d)", tc.n, tc.r)
	}
}

func TestCombinationsBoundaries(t *testing.T) {
	e := New()

	for _, n := range []int{0, 1, 7, 49, 200} {
		got, err := e.Combinations(n, 0)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got, "C(%d, 0)", n)

		got, err = e.Combinations(n, n)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got, "C(%d, %d)", n, n)
	}

	got, err := e.Combinations(9, 1)
	require.NoError(t, err)
	assert.Equal(t, 9.0, got)

	got, err = e.Combinations(3, 7)
	require.NoError(t, err)
	assert.Zero(t, got, "r > n must yield 0")
}

func TestCombinationsSymmetry(t *testing.T) {
	e := New()

	for _, tc := range []struct{ n, r int }{{49, 6}, {90, 5}, {200, 30}} {
		a, err := e.Combinations(tc.n, tc.r)
		require.NoError(t, err)
		b, err := e.Combinations(tc.n, tc.n-tc.r)
		require.NoError(t, err)
		assert.Equal(t, a, b, "C(%d,%d) != C(%d,%d)", tc.n, tc.r, tc.n, tc.n-tc.r)
	}
}

func TestCombinationsRejectsNegative(t *testing.T) {
	e := New()

	_, err := e.Combinations(-1, 2)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.Combinations(5, -2)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCombinationsExact(t *testing.T) {
	e := New()

	got, err := e.CombinationsExact(52, 6)
	require.NoError(t, err)
	assert.Equal(t, "20358520", got.String())

	// Far beyond the float64-friendly range, still exact.
	got, err = e.CombinationsExact(300, 150)
	require.NoError(t, err)
	assert.Equal(t, "93", got.String()[:2])
	assert.Len(t, got.String(), 89)

	got, err = e.CombinationsExact(5, 9)
	require.NoError(t, err)
	assert.Equal(t, "0", got.String())
}
