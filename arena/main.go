// Command arena plays the search strategies against each other and reports
// Elo standings. It runs in-process and needs no backend.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/raddah/GomokuMaster/engine"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if level, err := zerolog.ParseLevel(getenv("ARENA_LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	contenders, err := parseContenders(getenv("ARENA_STRATEGIES", "negamax,best_first"))
	if err != nil {
		log.Fatal().Err(err).Msg("arena contenders")
	}

	search := engine.DefaultConfig()
	search.AiTimeoutMs = getenvInt("ARENA_TIMEOUT_MS", 1000)
	a := &arena{
		boardSize:    getenvInt("ARENA_BOARD_SIZE", 9),
		difficulty:   getenvInt("ARENA_DIFFICULTY", 2),
		openings:     getenvInt("ARENA_OPENINGS", 4),
		openingPlies: getenvInt("ARENA_OPENING_PLIES", 4),
		maxPlies:     getenvInt("ARENA_MAX_PLIES", 0),
		eloK:         getenvFloat("ARENA_ELO_K", 20),
		seed:         int64(getenvInt("ARENA_SEED", 1)),
		search:       search,
	}
	if a.openings < 1 {
		a.openings = 1
	}
	if a.eloK <= 0 {
		a.eloK = 20
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int("boardSize", a.boardSize).
		Int("difficulty", a.difficulty).
		Int("openings", a.openings).
		Int("contenders", len(contenders)).
		Msg("arena-start")
	rep, err := a.run(ctx, contenders)
	if err != nil {
		log.Fatal().Err(err).Msg("arena stopped")
	}
	for rank, c := range rep.Standings {
		log.Info().
			Int("rank", rank+1).
			Str("id", c.ID).
			Float64("elo", c.Elo).
			Int("wins", c.Wins).
			Int("losses", c.Losses).
			Int("draws", c.Draws).
			Msg("arena-standing")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		log.Fatal().Err(err).Msg("write report")
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid integer")
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid float")
		return fallback
	}
	return parsed
}
