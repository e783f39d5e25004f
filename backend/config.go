package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/raddah/GomokuMaster/engine"
	"github.com/samber/lo"
)

type ServerConfig struct {
	ListenAddr string `json:"listen_addr"`
	LogLevel   string `json:"log_level"`
	LogPretty  bool   `json:"log_pretty"`

	GameIdleTtlSec   int `json:"game_idle_ttl_sec"`
	SweepIntervalSec int `json:"sweep_interval_sec"`
	MaxGames         int `json:"max_games"`

	DefaultBoardSize  int `json:"default_board_size"`
	DefaultDifficulty int `json:"default_difficulty"`

	KafkaBrokers []string `json:"kafka_brokers"`
	KafkaTopic   string   `json:"kafka_topic"`

	Engine engine.Config `json:"engine"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr: ":5001",
		LogLevel:   "info",
		LogPretty:  false,

		GameIdleTtlSec:   30 * 60,
		SweepIntervalSec: 60,
		MaxGames:         1024,

		DefaultBoardSize:  engine.DefaultBoardSize,
		DefaultDifficulty: 3,

		// Analytics stay off until brokers are configured.
		KafkaBrokers: nil,
		KafkaTopic:   "gomoku-events",

		Engine: engine.DefaultConfig(),
	}
}

// GameIdleTTL is zero when games never expire.
func (c ServerConfig) GameIdleTTL() time.Duration {
	if c.GameIdleTtlSec <= 0 {
		return 0
	}
	return time.Duration(c.GameIdleTtlSec) * time.Second
}

func (c ServerConfig) SweepInterval() time.Duration {
	if c.SweepIntervalSec <= 0 {
		return time.Minute
	}
	return time.Duration(c.SweepIntervalSec) * time.Second
}

// LoadServerConfig layers defaults, the optional JSON file at path and the
// GOMOKU_* environment variables, in that order.
func LoadServerConfig(path string, lookup func(string) (string, bool)) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if lookup != nil {
		if err := applyEnv(&cfg, lookup); err != nil {
			return cfg, err
		}
	}
	if err := cfg.Engine.Validate(); err != nil {
		return cfg, fmt.Errorf("engine config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *ServerConfig, lookup func(string) (string, bool)) error {
	// PORT is honoured for hosts that only hand out a port number.
	if port, ok := lookup("PORT"); ok && port != "" {
		cfg.ListenAddr = ":" + port
	}
	if v, ok := lookup("GOMOKU_LISTEN_ADDR"); ok && v != "" {
		cfg.ListenAddr = v
	}
	if v, ok := lookup("GOMOKU_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup("GOMOKU_KAFKA_TOPIC"); ok && v != "" {
		cfg.KafkaTopic = v
	}
	if v, ok := lookup("GOMOKU_KAFKA_BROKERS"); ok {
		cfg.KafkaBrokers = splitList(v)
	}

	bools := map[string]*bool{
		"GOMOKU_LOG_PRETTY":             &cfg.LogPretty,
		"GOMOKU_AI_ITERATIVE_DEEPENING": &cfg.Engine.AiIterativeDeepening,
		"GOMOKU_AI_LOG_SEARCH_STATS":    &cfg.Engine.AiLogSearchStats,
	}
	for name, dst := range bools {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = parsed
	}

	ints := map[string]*int{
		"GOMOKU_GAME_IDLE_TTL_SEC":  &cfg.GameIdleTtlSec,
		"GOMOKU_SWEEP_INTERVAL_SEC": &cfg.SweepIntervalSec,
		"GOMOKU_MAX_GAMES":          &cfg.MaxGames,
		"GOMOKU_DEFAULT_BOARD_SIZE": &cfg.DefaultBoardSize,
		"GOMOKU_DEFAULT_DIFFICULTY": &cfg.DefaultDifficulty,
		"GOMOKU_AI_TIMEOUT_MS":      &cfg.Engine.AiTimeoutMs,
		"GOMOKU_AI_TT_SIZE":         &cfg.Engine.AiTtSize,
		"GOMOKU_AI_TT_BUCKETS":      &cfg.Engine.AiTtBuckets,
	}
	for name, dst := range ints {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = parsed
	}
	return nil
}

func splitList(value string) []string {
	parts := lo.Map(strings.Split(value, ","), func(part string, _ int) string {
		return strings.TrimSpace(part)
	})
	return lo.Compact(parts)
}
