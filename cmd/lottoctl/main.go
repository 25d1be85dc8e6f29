package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/lottokit/draw-engine/internal/config"
	"github.com/lottokit/draw-engine/internal/logger"
	"github.com/lottokit/draw-engine/internal/odds"
	"github.com/lottokit/draw-engine/internal/picker"
	"github.com/lottokit/draw-engine/internal/simulation"
	"github.com/lottokit/draw-engine/pkg/events"
	"github.com/lottokit/draw-engine/pkg/infra"
	"github.com/lottokit/draw-engine/pkg/kvstore"
	"github.com/lottokit/draw-engine/pkg/ratelimiter"
	"github.com/lottokit/draw-engine/pkg/retry"
	"github.com/lottokit/draw-engine/pkg/store/ticketstore"
	"github.com/lottokit/draw-engine/pkg/ticketfilter"
)

const version = "0.3.0"

var (
	configPath string
	debug      bool
)

func main() {
	root := &cobra.Command{
		Use:           "lottoctl",
		Short:         "Lottery draw engine: odds tables, ticket generation and match simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitDefault(debug)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "Path to configuration file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logs")

	root.AddCommand(newOddsCmd(), newGenerateCmd(), newSimulateCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// --- odds --- //

func newOddsCmd() *cobra.Command {
	var (
		game string
		pool int
		pick int
		sets int
	)

	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Print the odds table for a game or an explicit pool/pick pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if game != "" {
				cfg, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				g, err := cfg.GetGame(game)
				if err != nil {
					return err
				}
				pool, pick = g.PoolSize, g.DrawSize
				if sets == 0 {
					sets = g.DefaultSets
				}
			}
			if sets == 0 {
				sets = 1
			}

			report, err := odds.New().Compute(pool, pick, sets)
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}
	cmd.Flags().StringVar(&game, "game", "", "Game name from the catalog")
	cmd.Flags().IntVar(&pool, "pool", 49, "Pool size")
	cmd.Flags().IntVar(&pick, "pick", 6, "Numbers drawn per ticket")
	cmd.Flags().IntVar(&sets, "sets", 0, "Number of independent tickets")
	return cmd
}

func printReport(report *odds.Report) {
	fmt.Printf("Pick %d of %d, playing %d ticket(s)\n", report.DrawSize, report.PoolSize, report.NumSets)
	fmt.Printf("Total combinations: %s\n\n", report.TotalCombinationsExact)
	fmt.Printf("%-7s %-14s %-14s %s\n", "match", "single", "adjusted", "odds")
	for _, m := range report.PerMatch {
		fmt.Printf("%-7d %-14.6e %-14.6e %s\n", m.MatchCount, m.SingleChance, m.AdjustedChance, m.Ratio)
	}
}

// --- generate --- //

func newGenerateCmd() *cobra.Command {
	var (
		game  string
		count int
		seed  uint32
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate tickets for a game, persist them and emit a draw event",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			g, err := cfg.GetGame(game)
			if err != nil {
				return err
			}
			if count == 0 {
				count = g.DefaultSets
			}

			var gen *picker.Generator
			if cmd.Flags().Changed("seed") {
				gen = picker.New(seed)
			} else {
				gen = picker.NewRandom()
			}
			gen.WithFilter(ticketfilter.New(uint(count), ticketfilter.DefaultFalsePositiveRate))

			tickets, err := gen.GenerateTickets(g, count)
			if err != nil {
				return err
			}

			store, err := openTicketStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveTickets(g.Name, tickets); err != nil {
				return fmt.Errorf("persist tickets: %w", err)
			}

			emitter := openEmitter(cfg)
			defer emitter.Close()
			if err := emitter.EmitTickets(g.Name, tickets); err != nil {
				slog.Warn("Failed to emit ticket event", "error", err)
			}

			for _, ticket := range tickets {
				line := make([]string, len(ticket.Numbers))
				for i, n := range ticket.Numbers {
					line[i] = strconv.Itoa(n)
				}
				fmt.Println(strings.Join(line, " "))
			}
			slog.Info("Tickets generated", "game", g.Name, "count", len(tickets))
			return nil
		},
	}
	cmd.Flags().StringVar(&game, "game", "", "Game name from the catalog")
	cmd.Flags().IntVar(&count, "count", 0, "How many tickets to generate")
	cmd.Flags().Uint32Var(&seed, "seed", 0, "RNG seed for reproducible tickets")
	_ = cmd.MarkFlagRequired("game")
	return cmd
}

// --- simulate --- //

func newSimulateCmd() *cobra.Command {
	var (
		game     string
		target   string
		match    int
		maxDraws uint64
		seed     uint32
		trials   int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Draw sets until the target ticket is matched (Ctrl+C to stop)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			g, err := cfg.GetGame(game)
			if err != nil {
				return err
			}

			numbers, err := parseNumbers(target)
			if err != nil {
				return fmt.Errorf("parse target: %w", err)
			}
			if maxDraws == 0 {
				maxDraws = cfg.Simulation.MaxDraws
			}

			emitter := openEmitter(cfg)
			defer emitter.Close()

			lastReport := time.Now()
			runner, err := simulation.NewRunner(seed, simulation.Options{
				Game:       g,
				Target:     numbers,
				MatchCount: match,
				BatchSize:  cfg.Simulation.BatchSize,
				MaxDraws:   maxDraws,
				OnProgress: func(draws uint64, bestMatch int) {
					if time.Since(lastReport) < cfg.Simulation.ReportInterval {
						return
					}
					lastReport = time.Now()
					slog.Info("Simulation progress", "draws", draws, "best_match", bestMatch)
					_ = emitter.EmitSimulation(g.Name, map[string]any{
						"draws": draws, "best_match": bestMatch,
					})
				},
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if trials > 1 {
				stats, err := runner.RunTrials(ctx, trials)
				if err != nil {
					_ = emitter.EmitError(g.Name, err)
					return err
				}
				if err := emitter.EmitSimulation(g.Name, stats); err != nil {
					slog.Warn("Failed to emit simulation event", "error", err)
				}
				slog.Info("Trials finished",
					"game", g.Name,
					"trials", stats.Trials,
					"matched", stats.Matched,
					"mean_draws", stats.Mean,
					"p50", stats.P50,
					"p90", stats.P90,
					"p99", stats.P99)
				return nil
			}

			result, err := runner.Run(ctx)
			if err != nil {
				_ = emitter.EmitError(g.Name, err)
				return err
			}
			if err := emitter.EmitSimulation(g.Name, result); err != nil {
				slog.Warn("Failed to emit simulation event", "error", err)
			}

			slog.Info("Simulation finished",
				"game", g.Name,
				"matched", result.Matched,
				"draws", result.Draws,
				"best_match", result.BestMatch,
				"elapsed", result.Elapsed)
			return nil
		},
	}
	cmd.Flags().StringVar(&game, "game", "", "Game name from the catalog")
	cmd.Flags().StringVar(&target, "target", "", "Comma-separated winning set, e.g. 4,8,15,16,23,42")
	cmd.Flags().IntVar(&match, "match", 0, "Required match count (default: full match)")
	cmd.Flags().Uint64Var(&maxDraws, "max-draws", 0, "Stop after this many draws")
	cmd.Flags().Uint32Var(&seed, "seed", 5489, "RNG seed")
	cmd.Flags().IntVar(&trials, "trials", 1, "Repeat the hunt and report draws-until-match stats")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func parseNumbers(csv string) ([]int, error) {
	parts := strings.Split(csv, ",")
	numbers := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// --- serve --- //

func newServeCmd() *cobra.Command {
	var (
		listen string
		rps    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the odds and ticket HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			store, err := openTicketStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			emitter := openEmitter(cfg)
			defer emitter.Close()

			handler := NewDrawHTTPHandler(version, cfg, store, emitter)
			limiter := ratelimiter.NewFromRPS(rps, rps*2)
			server := &http.Server{
				Addr:         listen,
				Handler:      limiter.Middleware(handler.Routes()),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				slog.Info("HTTP API listening", "addr", listen)
				errCh <- server.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-stop:
			}

			slog.Info("Shutting down HTTP API...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8080", "Listen address")
	cmd.Flags().IntVar(&rps, "rps", 50, "Max requests per second before 429s")
	return cmd
}

// --- shared wiring --- //

func openTicketStore(cfg *config.Config) (ticketstore.Store, error) {
	kv, err := kvstore.NewBadgerStore(cfg.Storage.Directory, "")
	if err != nil {
		return nil, fmt.Errorf("open ticket store: %w", err)
	}
	return ticketstore.New(kv), nil
}

func openEmitter(cfg *config.Config) events.Emitter {
	if cfg.NATS.URL == "" {
		return events.NewNopEmitter()
	}
	var conn *nats.Conn
	err := retry.Constant(func() error {
		var connErr error
		conn, connErr = infra.ConnectNATS(cfg.NATS.URL)
		return connErr
	}, retry.DefaultInterval, retry.DefaultMaxAttempts)
	if err != nil {
		slog.Warn("NATS unavailable, events disabled", "error", err)
		return events.NewNopEmitter()
	}
	prefix := cfg.NATS.SubjectPrefix
	if prefix == "" {
		prefix = "lottokit"
	}
	return events.NewNATSEmitter(conn, prefix)
}
