package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raddah/GomokuMaster/engine"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownGame  = errors.New("game not found")
	ErrTooManyGames = errors.New("too many active games")
)

type registryEntry struct {
	controller *engine.GameController
	created    time.Time
	lastSeen   time.Time
}

// Registry owns every live game. Games idle for longer than the TTL are
// dropped by Sweep.
type Registry struct {
	mu       sync.Mutex
	games    map[string]*registryEntry
	ttl      time.Duration
	maxGames int
	now      func() time.Time
	onExpire func(id string)
}

func NewRegistry(ttl time.Duration, maxGames int) *Registry {
	return &Registry{
		games:    make(map[string]*registryEntry),
		ttl:      ttl,
		maxGames: maxGames,
		now:      time.Now,
	}
}

func (r *Registry) OnExpire(fn func(id string)) {
	r.mu.Lock()
	r.onExpire = fn
	r.mu.Unlock()
}

func (r *Registry) Create(settings engine.GameSettings) (string, *engine.GameController, error) {
	controller, err := engine.NewGameController(settings)
	if err != nil {
		return "", nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maxGames > 0 && len(r.games) >= r.maxGames {
		return "", nil, ErrTooManyGames
	}
	id := uuid.NewString()
	now := r.now()
	r.games[id] = &registryEntry{controller: controller, created: now, lastSeen: now}
	return id, controller, nil
}

// Get returns the game and marks it as recently used.
func (r *Registry) Get(id string) (*engine.GameController, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.games[id]
	if !ok {
		return nil, ErrUnknownGame
	}
	entry.lastSeen = r.now()
	return entry.controller, nil
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return false
	}
	delete(r.games, id)
	return true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games)
}

// Sweep removes idle games and returns their ids.
func (r *Registry) Sweep() []string {
	if r.ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	cutoff := r.now().Add(-r.ttl)
	var expired []string
	for id, entry := range r.games {
		if entry.lastSeen.Before(cutoff) {
			delete(r.games, id)
			expired = append(expired, id)
		}
	}
	onExpire := r.onExpire
	r.mu.Unlock()

	for _, id := range expired {
		log.Debug().Str("gameId", id).Msg("game-expired")
		if onExpire != nil {
			onExpire(id)
		}
	}
	return expired
}

func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if expired := r.Sweep(); len(expired) > 0 {
				log.Info().Int("expired", len(expired)).Int("active", r.Len()).Msg("registry-sweep")
			}
		}
	}
}
