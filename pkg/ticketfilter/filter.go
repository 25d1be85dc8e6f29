// Package ticketfilter tracks already-issued ticket combinations with
// per-game Bloom filters, so a generation run can avoid handing the same
// set out twice. False positives only cost an extra draw, never a wrong
// ticket.
package ticketfilter

import (
	"strconv"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	DefaultExpectedItems     = 100_000
	DefaultFalsePositiveRate = 0.001
)

type gameFilter struct {
	filter *bloom.BloomFilter
	count  uint
}

// Filter holds one Bloom filter per game. Safe for concurrent use.
type Filter struct {
	mu                sync.RWMutex
	games             map[string]*gameFilter
	expectedItems     uint
	falsePositiveRate float64
}

func New(expectedItems uint, falsePositiveRate float64) *Filter {
	if expectedItems == 0 {
		expectedItems = DefaultExpectedItems
	}
	if falsePositiveRate <= 0 || falsePositiveRate >= 1 {
		falsePositiveRate = DefaultFalsePositiveRate
	}
	return &Filter{
		games:             make(map[string]*gameFilter),
		expectedItems:     expectedItems,
		falsePositiveRate: falsePositiveRate,
	}
}

// Add records a ticket combination for a game.
func (f *Filter) Add(game string, numbers []int) {
	key := combinationKey(numbers)

	f.mu.Lock()
	defer f.mu.Unlock()
	gf, ok := f.games[game]
	if !ok {
		gf = &gameFilter{filter: bloom.NewWithEstimates(f.expectedItems, f.falsePositiveRate)}
		f.games[game] = gf
	}
	gf.filter.AddString(key)
	gf.count++
}

// Seen reports whether the combination was (probably) already issued.
func (f *Filter) Seen(game string, numbers []int) bool {
	key := combinationKey(numbers)

	f.mu.RLock()
	defer f.mu.RUnlock()
	gf, ok := f.games[game]
	if !ok {
		return false
	}
	return gf.filter.TestString(key)
}

// Clear drops the filter for a game.
func (f *Filter) Clear(game string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.games, game)
}

// Stats returns filter metadata for a game.
func (f *Filter) Stats(game string) map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	gf, ok := f.games[game]
	if !ok {
		return map[string]any{"initialized": false}
	}
	return map[string]any{
		"initialized":         true,
		"tickets_added":       gf.count,
		"expected_items":      f.expectedItems,
		"false_positive_rate": f.falsePositiveRate,
	}
}

// combinationKey is order-insensitive because tickets are stored sorted.
func combinationKey(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}
