package ticketstore

import (
	"testing"
	"time"

	"github.com/lottokit/draw-engine/internal/picker"
	"github.com/lottokit/draw-engine/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	kv, err := kvstore.NewBadgerStore(t.TempDir(), "")
	require.NoError(t, err)
	store := New(kv)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleTickets(n int) []picker.Ticket {
	now := time.Now().UTC().Truncate(time.Second)
	tickets := make([]picker.Ticket, 0, n)
	for i := 0; i < n; i++ {
		tickets = append(tickets, picker.Ticket{
			Game:        "lotto649",
			Numbers:     []int{1 + i, 10 + i, 20 + i, 30 + i, 40 + i, 45 + i},
			Seed:        5489,
			GeneratedAt: now,
		})
	}
	return tickets
}

func TestSaveAndListTickets(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveTickets("lotto649", sampleTickets(3)))

	got, err := store.ListTickets("lotto649")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 10, 20, 30, 40, 45}, got[0].Numbers)

	count, err := store.Count("lotto649")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSaveTicketsAppends(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveTickets("lotto649", sampleTickets(2)))
	require.NoError(t, store.SaveTickets("lotto649", sampleTickets(2)))

	got, err := store.ListTickets("lotto649")
	require.NoError(t, err)
	assert.Len(t, got, 4)

	count, err := store.Count("lotto649")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)
}

func TestTicketsAreScopedByGame(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveTickets("lotto649", sampleTickets(2)))

	got, err := store.ListTickets("other")
	require.NoError(t, err)
	assert.Empty(t, got)

	count, err := store.Count("other")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLatestResultRoundTrip(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetLatestResult("lotto649")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.SaveLatestResult("lotto649", []int{4, 8, 15, 16, 23, 42}))

	got, err = store.GetLatestResult("lotto649")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8, 15, 16, 23, 42}, got)
}

func TestValidation(t *testing.T) {
	store := newTestStore(t)

	require.Error(t, store.SaveTickets("", sampleTickets(1)))
	require.Error(t, store.SaveLatestResult("lotto649", nil))
	_, err := store.ListTickets("")
	require.Error(t, err)
}
