package engine

import (
	"context"
	"sync"
)

// GameSnapshot is a consistent copy of a game taken under the controller lock.
type GameSnapshot struct {
	Settings    GameSettings
	Board       [][]int
	ToMove      PlayerColor
	Status      GameStatus
	Winner      int
	WinningLine []Move
	History     []HistoryEntry
	MoveCount   int
	HumanToMove bool
}

type CacheSnapshot struct {
	Count      int
	Capacity   int
	Generation uint32
	Total      int
	Entries    []TTEntry
}

// GameController serializes every operation on one game. A search holds the
// lock for its whole duration.
type GameController struct {
	mu   sync.Mutex
	game *Game
}

func NewGameController(settings GameSettings) (*GameController, error) {
	game, err := NewGame(settings)
	if err != nil {
		return nil, err
	}
	return &GameController{game: game}, nil
}

func (gc *GameController) ApplyHumanMove(move Move) (MoveResult, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.ApplyHumanMove(move)
}

func (gc *GameController) ForceMove(move Move) (MoveResult, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.ForceMove(move)
}

func (gc *GameController) RequestAIMove(ctx context.Context) (MoveResult, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.RequestAIMove(ctx)
}

func (gc *GameController) SuggestMove(ctx context.Context) (Move, SearchStats, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SuggestMove(ctx)
}

func (gc *GameController) Reset(settings GameSettings) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Reset(settings)
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *GameController) State() *GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Status() GameStatus {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Status()
}

func (gc *GameController) CurrentPlayerIsHuman() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.CurrentPlayerIsHuman()
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.history.Last()
}

func (gc *GameController) Snapshot() GameSnapshot {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	g := gc.game
	return GameSnapshot{
		Settings:    g.settings,
		Board:       g.state.Board.Rows(),
		ToMove:      g.state.ToMove,
		Status:      g.status,
		Winner:      WinnerCode(g.status),
		WinningLine: g.WinningLine(),
		History:     g.history.All(),
		MoveCount:   g.state.MoveCount(),
		HumanToMove: g.CurrentPlayerIsHuman(),
	}
}

func (gc *GameController) Cache(offset, limit int) CacheSnapshot {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	tt := gc.game.TranspositionTable()
	entries, total := tt.TopEntriesByHits(offset, limit)
	return CacheSnapshot{
		Count:      tt.Count(),
		Capacity:   tt.Capacity(),
		Generation: tt.Generation(),
		Total:      total,
		Entries:    entries,
	}
}

func (gc *GameController) ClearCache() {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.TranspositionTable().Clear()
}
