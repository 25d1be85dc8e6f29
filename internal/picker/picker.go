// Package picker turns the raw RNG into lottery tickets: sorted sets of
// distinct numbers drawn for a configured game, reproducible by seed.
package picker

import (
	"fmt"
	"sort"
	"time"

	"github.com/lottokit/draw-engine/internal/config"
	"github.com/lottokit/draw-engine/internal/rng"
	"github.com/lottokit/draw-engine/pkg/ticketfilter"
)

// dedupeRetries bounds the redraw loop when a duplicate filter is set.
const dedupeRetries = 32

// Ticket is one generated number set for a game.
type Ticket struct {
	Game        string    `json:"game"`
	Numbers     []int     `json:"numbers"`
	Seed        uint32    `json:"seed"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Generator draws tickets from a single owned RNG. Not safe for concurrent
// use; give each goroutine its own Generator.
type Generator struct {
	rng    *rng.MT19937
	seed   uint32
	filter *ticketfilter.Filter
}

// New returns a Generator seeded with the given value, so ticket runs can
// be reproduced.
func New(seed uint32) *Generator {
	return &Generator{rng: rng.New(seed), seed: seed}
}

// NewRandom returns a Generator with an entropy-based seed.
func NewRandom() *Generator {
	g := rng.NewFromTime()
	return &Generator{rng: g}
}

// WithFilter makes the Generator redraw combinations the filter has
// already seen, and record new ones. Returns g for chaining.
func (g *Generator) WithFilter(f *ticketfilter.Filter) *Generator {
	g.filter = f
	return g
}

// GenerateTickets draws count tickets for the game, each a sorted set of
// DrawSize distinct numbers from 1..PoolSize.
func (g *Generator) GenerateTickets(game config.GameConfig, count int) ([]Ticket, error) {
	if count < 1 {
		return nil, fmt.Errorf("generate tickets: count %d below 1", count)
	}

	now := time.Now().UTC()
	tickets := make([]Ticket, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := g.drawUnique(game)
		if err != nil {
			return nil, fmt.Errorf("generate tickets: game %s: %w", game.Name, err)
		}
		tickets = append(tickets, Ticket{
			Game:        game.Name,
			Numbers:     numbers,
			Seed:        g.seed,
			GeneratedAt: now,
		})
	}
	return tickets, nil
}

// drawUnique returns one sorted ticket, redrawing past the duplicate
// filter when one is set. After dedupeRetries collisions the last draw
// is kept rather than failing the whole run.
func (g *Generator) drawUnique(game config.GameConfig) ([]int, error) {
	var numbers []int
	for attempt := 0; attempt < dedupeRetries; attempt++ {
		drawn, err := g.rng.UniqueInts(game.DrawSize, 1, game.PoolSize)
		if err != nil {
			return nil, err
		}
		sort.Ints(drawn)
		numbers = drawn
		if g.filter == nil || !g.filter.Seen(game.Name, drawn) {
			break
		}
	}
	if g.filter != nil {
		g.filter.Add(game.Name, numbers)
	}
	return numbers, nil
}

// GenerateFromPool draws count tickets of quantity numbers each from an
// arbitrary pool, for play slips that exclude some numbers. The pool is
// left untouched.
func (g *Generator) GenerateFromPool(game string, pool []int, quantity, count int) ([]Ticket, error) {
	if count < 1 {
		return nil, fmt.Errorf("generate tickets: count %d below 1", count)
	}

	now := time.Now().UTC()
	tickets := make([]Ticket, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := g.rng.DrawSet(pool, quantity)
		if err != nil {
			return nil, fmt.Errorf("generate tickets: game %s: %w", game, err)
		}
		sort.Ints(numbers)
		tickets = append(tickets, Ticket{
			Game:        game,
			Numbers:     numbers,
			Seed:        g.seed,
			GeneratedAt: now,
		})
	}
	return tickets, nil
}
