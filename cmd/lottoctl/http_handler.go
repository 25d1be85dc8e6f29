package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/lottokit/draw-engine/internal/config"
	"github.com/lottokit/draw-engine/internal/odds"
	"github.com/lottokit/draw-engine/internal/picker"
	"github.com/lottokit/draw-engine/pkg/events"
	"github.com/lottokit/draw-engine/pkg/store/ticketstore"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type APIErrorResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

type GenerateTicketsRequest struct {
	Game  string  `json:"game"`
	Count int     `json:"count"`
	Seed  *uint32 `json:"seed,omitempty"`
}

type GenerateTicketsResponse struct {
	Status  string          `json:"status"`
	Game    string          `json:"game"`
	Tickets []picker.Ticket `json:"tickets"`
}

type ListTicketsResponse struct {
	Status  string          `json:"status"`
	Game    string          `json:"game"`
	Count   int             `json:"count"`
	Tickets []picker.Ticket `json:"tickets"`
}

// DrawHTTPHandler exposes odds computation and ticket generation over a
// small JSON API. Each request gets its own odds engine, so no cache is
// shared across goroutines.
type DrawHTTPHandler struct {
	version string
	cfg     *config.Config
	store   ticketstore.Store
	emitter events.Emitter
}

func NewDrawHTTPHandler(
	version string,
	cfg *config.Config,
	store ticketstore.Store,
	emitter events.Emitter,
) *DrawHTTPHandler {
	return &DrawHTTPHandler{
		version: version,
		cfg:     cfg,
		store:   store,
		emitter: emitter,
	}
}

func (h *DrawHTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", h.handleHealth)
	mux.HandleFunc("GET /api/v1/odds", h.handleOdds)
	mux.HandleFunc("POST /api/v1/tickets", h.handleGenerateTickets)
	mux.HandleFunc("GET /api/v1/tickets", h.handleListTickets)
	return mux
}

func (h *DrawHTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	})
}

func (h *DrawHTTPHandler) handleOdds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pool, pick, sets := 0, 0, 1
	if game := q.Get("game"); game != "" {
		g, err := h.cfg.GetGame(game)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		pool, pick, sets = g.PoolSize, g.DrawSize, g.DefaultSets
	}
	var err error
	if pool, err = intParam(q.Get("pool"), pool); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("pool: %w", err))
		return
	}
	if pick, err = intParam(q.Get("pick"), pick); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("pick: %w", err))
		return
	}
	if sets, err = intParam(q.Get("sets"), sets); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("sets: %w", err))
		return
	}

	report, err := odds.New().Compute(pool, pick, sets)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *DrawHTTPHandler) handleGenerateTickets(w http.ResponseWriter, r *http.Request) {
	var req GenerateTicketsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	game, err := h.cfg.GetGame(req.Game)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if req.Count == 0 {
		req.Count = game.DefaultSets
	}

	var gen *picker.Generator
	if req.Seed != nil {
		gen = picker.New(*req.Seed)
	} else {
		gen = picker.NewRandom()
	}

	tickets, err := gen.GenerateTickets(game, req.Count)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.store.SaveTickets(game.Name, tickets); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := h.emitter.EmitTickets(game.Name, tickets); err != nil {
		slog.Warn("Failed to emit ticket event", "game", game.Name, "error", err)
	}

	writeJSON(w, http.StatusCreated, GenerateTicketsResponse{
		Status:  "created",
		Game:    game.Name,
		Tickets: tickets,
	})
}

func (h *DrawHTTPHandler) handleListTickets(w http.ResponseWriter, r *http.Request) {
	game := r.URL.Query().Get("game")
	if game == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("game query parameter is required"))
		return
	}

	tickets, err := h.store.ListTickets(game)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ListTicketsResponse{
		Status:  "ok",
		Game:    game,
		Count:   len(tickets),
		Tickets: tickets,
	})
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, APIErrorResponse{
		Status:    "error",
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
	})
}
