// Package ticketstore persists generated tickets and official draw results
// per game on top of the shared key-value store.
package ticketstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/lottokit/draw-engine/internal/picker"
	"github.com/lottokit/draw-engine/pkg/kvstore"
)

const ticketsRoot = "draws"

func ticketKey(game string, id uint64) string {
	return fmt.Sprintf("%s/%s/tickets/%012d", ticketsRoot, game, id)
}

func ticketPrefix(game string) string {
	return fmt.Sprintf("%s/%s/tickets/", ticketsRoot, game)
}

func counterKey(game string) string {
	return fmt.Sprintf("%s/%s/counter", ticketsRoot, game)
}

func latestResultKey(game string) string {
	return fmt.Sprintf("%s/%s/latest_result", ticketsRoot, game)
}

type Store interface {
	SaveTickets(game string, tickets []picker.Ticket) error
	ListTickets(game string) ([]picker.Ticket, error)
	Count(game string) (uint64, error)

	SaveLatestResult(game string, numbers []int) error
	GetLatestResult(game string) ([]int, error)

	Close() error
}

type ticketStore struct {
	store kvstore.KVStore
}

func New(store kvstore.KVStore) Store {
	return &ticketStore{store: store}
}

// SaveTickets appends tickets under monotonically increasing ids and bumps
// the per-game counter.
func (ts *ticketStore) SaveTickets(game string, tickets []picker.Ticket) error {
	if game == "" {
		return errors.New("game name is required")
	}
	if len(tickets) == 0 {
		return nil
	}

	next, err := ts.Count(game)
	if err != nil {
		return err
	}
	for _, ticket := range tickets {
		if err := ts.store.SetAny(ticketKey(game, next), ticket); err != nil {
			return fmt.Errorf("save ticket %d: %w", next, err)
		}
		next++
	}
	return ts.store.Set(counterKey(game), strconv.FormatUint(next, 10))
}

// ListTickets returns all stored tickets for a game in insertion order.
func (ts *ticketStore) ListTickets(game string) ([]picker.Ticket, error) {
	if game == "" {
		return nil, errors.New("game name is required")
	}

	pairs, err := ts.store.List(ticketPrefix(game))
	if err != nil {
		return nil, err
	}

	tickets := make([]picker.Ticket, 0, len(pairs))
	for _, pair := range pairs {
		var ticket picker.Ticket
		if err := json.Unmarshal(pair.Value, &ticket); err != nil {
			return nil, fmt.Errorf("decode ticket %s: %w", pair.Key, err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// Count returns how many tickets have been stored for the game.
func (ts *ticketStore) Count(game string) (uint64, error) {
	raw, err := ts.store.Get(counterKey(game))
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseUint(raw, 10, 64)
}

// SaveLatestResult records the most recent official draw for a game.
func (ts *ticketStore) SaveLatestResult(game string, numbers []int) error {
	if game == "" {
		return errors.New("game name is required")
	}
	if len(numbers) == 0 {
		return errors.New("result numbers are required")
	}
	return ts.store.SetAny(latestResultKey(game), numbers)
}

// GetLatestResult returns the most recent official draw, or nil when none
// has been recorded.
func (ts *ticketStore) GetLatestResult(game string) ([]int, error) {
	if game == "" {
		return nil, errors.New("game name is required")
	}
	var numbers []int
	ok, err := ts.store.GetAny(latestResultKey(game), &numbers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return numbers, nil
}

func (ts *ticketStore) Close() error {
	return ts.store.Close()
}
