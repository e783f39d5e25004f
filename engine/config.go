package engine

import (
	"fmt"
	"sync"
	"time"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5

	MaxTimeoutMs = 60_000
	MaxTtSize    = 1 << 22
	MaxTtBuckets = 16
)

type Config struct {
	AiTimeoutMs          int  `json:"ai_timeout_ms"`
	AiIterativeDeepening bool `json:"ai_iterative_deepening"`
	AiStopOnProvenResult bool `json:"ai_stop_on_proven_result"`
	AiBestFirstEarlyExit bool `json:"ai_best_first_early_exit"`
	AiTtSize             int  `json:"ai_tt_size"`
	AiTtBuckets          int  `json:"ai_tt_buckets"`
	AiLogSearchStats     bool `json:"ai_log_search_stats"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		// Per-move budget; independent of difficulty.
		AiTimeoutMs:          5000,
		AiIterativeDeepening: true,
		AiStopOnProvenResult: true,
		AiBestFirstEarlyExit: true,

		// 16384 buckets x 4 slots
		AiTtSize:    1 << 14,
		AiTtBuckets: 4,

		AiLogSearchStats: false,
	}
}

// Timeout is zero when the search runs without a wall-clock budget.
func (c Config) Timeout() time.Duration {
	if c.AiTimeoutMs <= 0 {
		return 0
	}
	return time.Duration(c.AiTimeoutMs) * time.Millisecond
}

// Validate bounds the values a caller may hand to a running service. A zero
// timeout is allowed in-process but never through Validate.
func (c Config) Validate() error {
	if c.AiTimeoutMs <= 0 || c.AiTimeoutMs > MaxTimeoutMs {
		return fmt.Errorf("%w: ai_timeout_ms %d outside 1..%d", ErrInvalidSettings, c.AiTimeoutMs, MaxTimeoutMs)
	}
	if c.AiTtSize < 1 || c.AiTtSize > MaxTtSize {
		return fmt.Errorf("%w: ai_tt_size %d outside 1..%d", ErrInvalidSettings, c.AiTtSize, MaxTtSize)
	}
	if c.AiTtBuckets < 1 || c.AiTtBuckets > MaxTtBuckets {
		return fmt.Errorf("%w: ai_tt_buckets %d outside 1..%d", ErrInvalidSettings, c.AiTtBuckets, MaxTtBuckets)
	}
	return nil
}

func (c Config) newTranspositionTable() *TranspositionTable {
	size := c.AiTtSize
	if size <= 0 {
		size = DefaultConfig().AiTtSize
	}
	return NewTranspositionTable(uint64(size), c.AiTtBuckets)
}

func ClampDifficulty(difficulty int) int {
	if difficulty < MinDifficulty {
		return MinDifficulty
	}
	if difficulty > MaxDifficulty {
		return MaxDifficulty
	}
	return difficulty
}

func NewConfigStore(config Config) *ConfigStore {
	return &ConfigStore{config: config}
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
