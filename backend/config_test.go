package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func envLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadServerConfigDefaults(t *testing.T) {
	cfg, err := LoadServerConfig("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultServerConfig()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.ListenAddr != ":5001" || cfg.DefaultBoardSize != 15 || cfg.DefaultDifficulty != 3 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.GameIdleTTL() != 30*time.Minute || cfg.SweepInterval() != time.Minute {
		t.Fatalf("unexpected durations %v %v", cfg.GameIdleTTL(), cfg.SweepInterval())
	}
	if cfg.Engine.AiTimeoutMs != 5000 {
		t.Fatalf("expected 5s engine timeout, got %d", cfg.Engine.AiTimeoutMs)
	}
}

func TestLoadServerConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	content := `{
		"listen_addr": ":7000",
		"max_games": 10,
		"kafka_brokers": ["a:9092"],
		"engine": {"ai_timeout_ms": 1500, "ai_tt_size": 1024}
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	env := map[string]string{
		"GOMOKU_MAX_GAMES":     "3",
		"GOMOKU_KAFKA_BROKERS": " b:9092, ,c:9092 ",
		"GOMOKU_LOG_PRETTY":    "true",
	}
	cfg, err := LoadServerConfig(path, envLookup(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":7000" {
		t.Fatalf("expected file listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.MaxGames != 3 || !cfg.LogPretty {
		t.Fatalf("expected env overrides, got %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.KafkaBrokers, []string{"b:9092", "c:9092"}) {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if cfg.Engine.AiTimeoutMs != 1500 || cfg.Engine.AiTtSize != 1024 {
		t.Fatalf("expected engine section from file, got %+v", cfg.Engine)
	}
	if !cfg.Engine.AiIterativeDeepening || cfg.Engine.AiTtBuckets != 4 {
		t.Fatalf("expected unspecified engine fields to keep defaults, got %+v", cfg.Engine)
	}
}

func TestLoadServerConfigPort(t *testing.T) {
	cfg, err := LoadServerConfig("", envLookup(map[string]string{"PORT": "8080"}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.ListenAddr)
	}
	cfg, _ = LoadServerConfig("", envLookup(map[string]string{"PORT": "8080", "GOMOKU_LISTEN_ADDR": "127.0.0.1:9000"}))
	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Fatalf("expected explicit listen addr to win, got %q", cfg.ListenAddr)
	}
}

func TestLoadServerConfigErrors(t *testing.T) {
	if _, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.json"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadServerConfig(path, nil); err == nil {
		t.Fatalf("expected error for malformed file")
	}
	for _, env := range []map[string]string{
		{"GOMOKU_AI_TIMEOUT_MS": "soon"},
		{"GOMOKU_LOG_PRETTY": "maybe"},
		{"GOMOKU_AI_TIMEOUT_MS": "0"},
		{"GOMOKU_AI_TIMEOUT_MS": "-5"},
		{"GOMOKU_AI_TT_SIZE": "4398046511104"},
		{"GOMOKU_AI_TT_BUCKETS": "64"},
	} {
		if _, err := LoadServerConfig("", envLookup(env)); err == nil {
			t.Fatalf("expected error for %v", env)
		}
	}
}

func TestDurationsFallBack(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.GameIdleTtlSec = 0
	cfg.SweepIntervalSec = -1
	if cfg.GameIdleTTL() != 0 || cfg.SweepInterval() != time.Minute {
		t.Fatalf("unexpected durations %v %v", cfg.GameIdleTTL(), cfg.SweepInterval())
	}
}

func TestSetupLogging(t *testing.T) {
	if err := setupLogging("debug", false); err != nil {
		t.Fatalf("debug: %v", err)
	}
	if err := setupLogging("", false); err != nil {
		t.Fatalf("empty level: %v", err)
	}
	if err := setupLogging("chatty", false); err == nil {
		t.Fatalf("expected unknown level to fail")
	}
}
