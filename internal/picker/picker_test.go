package picker

import (
	"fmt"
	"sort"
	"testing"

	"github.com/lottokit/draw-engine/internal/config"
	"github.com/lottokit/draw-engine/pkg/ticketfilter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lotto649 = config.GameConfig{Name: "lotto649", PoolSize: 49, DrawSize: 6}

func TestGenerateTickets(t *testing.T) {
	g := New(5489)

	tickets, err := g.GenerateTickets(lotto649, 10)
	require.NoError(t, err)
	require.Len(t, tickets, 10)

	for _, ticket := range tickets {
		assert.Equal(t, "lotto649", ticket.Game)
		assert.Equal(t, uint32(5489), ticket.Seed)
		require.Len(t, ticket.Numbers, 6)
		assert.True(t, sort.IntsAreSorted(ticket.Numbers))

		seen := make(map[int]struct{})
		for _, n := range ticket.Numbers {
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, 49)
			_, dup := seen[n]
			assert.False(t, dup, "duplicate number %d", n)
			seen[n] = struct{}{}
		}
	}
}

func TestGenerateTicketsReproducible(t *testing.T) {
	a, err := New(42).GenerateTickets(lotto649, 5)
	require.NoError(t, err)
	b, err := New(42).GenerateTickets(lotto649, 5)
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].Numbers, b[i].Numbers, "ticket %d diverged", i)
	}
}

func TestGenerateFromPool(t *testing.T) {
	g := New(7)
	pool := []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	original := append([]int(nil), pool...)

	tickets, err := g.GenerateFromPool("primes", pool, 4, 3)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, original, pool, "pool was mutated")

	members := make(map[int]struct{})
	for _, v := range pool {
		members[v] = struct{}{}
	}
	for _, ticket := range tickets {
		require.Len(t, ticket.Numbers, 4)
		for _, n := range ticket.Numbers {
			_, ok := members[n]
			assert.True(t, ok, "number %d not in pool", n)
		}
	}
}

func TestGenerateTicketsWithFilter(t *testing.T) {
	mini := config.GameConfig{Name: "mini", PoolSize: 10, DrawSize: 3}
	f := ticketfilter.New(1000, 0.001)

	tickets, err := New(99).WithFilter(f).GenerateTickets(mini, 20)
	require.NoError(t, err)
	require.Len(t, tickets, 20)

	seen := make(map[string]int)
	for _, ticket := range tickets {
		key := fmt.Sprint(ticket.Numbers)
		seen[key]++
		assert.True(t, f.Seen("mini", ticket.Numbers))
	}
	// 20 draws from C(10,3)=120 combinations repeat often without a
	// filter; with one, every ticket should be distinct.
	assert.Len(t, seen, 20)
}

func TestGenerateTicketsInvalidCount(t *testing.T) {
	_, err := New(1).GenerateTickets(lotto649, 0)
	require.Error(t, err)
}
