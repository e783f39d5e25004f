package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// MoveResult describes the position after a committed move.
type MoveResult struct {
	Valid    bool
	Move     Move
	Player   PlayerColor
	Board    [][]int
	GameOver bool
	Winner   int // 0 running or drawn, 1 Black, 2 White
	Status   GameStatus
	Depth    int
	Fallback bool
}

type Game struct {
	settings    GameSettings
	state       *GameState
	history     MoveHistory
	status      GameStatus
	winningLine []Move
	tt          *TranspositionTable
	black       Strategy
	white       Strategy
	turnStart   time.Time
}

func NewGame(settings GameSettings) (*Game, error) {
	g := &Game{}
	if err := g.Reset(settings); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset discards the position, the history and the transposition table.
func (g *Game) Reset(settings GameSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	g.settings = settings.normalized()
	g.state = NewGameState(g.settings.BoardSize)
	g.history.Clear()
	g.status = StatusRunning
	g.winningLine = nil
	g.tt = g.settings.Search.newTranspositionTable()
	g.createPlayers()
	g.turnStart = time.Now()
	g.logMatchup()
	return nil
}

func (g *Game) createPlayers() {
	g.black = newStrategy(g.settings.Black, g.tt, g.settings.Search)
	g.white = newStrategy(g.settings.White, g.tt, g.settings.Search)
}

func (g *Game) strategyFor(player PlayerColor) Strategy {
	if player == PlayerBlack {
		return g.black
	}
	return g.white
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) State() *GameState {
	return g.state.Clone()
}

func (g *Game) Status() GameStatus {
	return g.status
}

func (g *Game) History() MoveHistory {
	return MoveHistory{entries: g.history.All()}
}

func (g *Game) WinningLine() []Move {
	return append([]Move(nil), g.winningLine...)
}

func (g *Game) CurrentPlayerIsHuman() bool {
	return g.settings.sourceFor(g.state.ToMove).IsHuman()
}

func (g *Game) TranspositionTable() *TranspositionTable {
	return g.tt
}

func (g *Game) ApplyHumanMove(move Move) (MoveResult, error) {
	if g.status != StatusRunning {
		return MoveResult{}, ErrGameOver
	}
	if !g.CurrentPlayerIsHuman() {
		return MoveResult{}, ErrNotHumanTurn
	}
	return g.commitMove(move, HistoryEntry{})
}

// ForceMove plays move for the side to move regardless of who controls it.
// It is used to seed openings.
func (g *Game) ForceMove(move Move) (MoveResult, error) {
	if g.status != StatusRunning {
		return MoveResult{}, ErrGameOver
	}
	return g.commitMove(move, HistoryEntry{})
}

// RequestAIMove runs the strategy of the side to move and commits its move.
// A search that yields nothing is replaced by the fallback move.
func (g *Game) RequestAIMove(ctx context.Context) (MoveResult, error) {
	if g.status != StatusRunning {
		return MoveResult{}, ErrGameOver
	}
	strategy := g.strategyFor(g.state.ToMove)
	if strategy == nil {
		return MoveResult{}, ErrNotEngineTurn
	}
	if g.state.Board.Full() {
		return MoveResult{}, ErrNoLegalMove
	}

	move, stats, fallback := g.search(ctx, strategy)
	if move == NoMove {
		return MoveResult{}, ErrNoLegalMove
	}
	return g.commitMove(move, HistoryEntry{
		IsAi:     true,
		Depth:    stats.CompletedDepths,
		Fallback: fallback,
		Nodes:    stats.Nodes,
	})
}

// SuggestMove searches for the side to move without committing anything. It
// backs the hint endpoint for human players.
func (g *Game) SuggestMove(ctx context.Context) (Move, SearchStats, error) {
	if g.status != StatusRunning {
		return NoMove, SearchStats{}, ErrGameOver
	}
	if g.state.Board.Full() {
		return NoMove, SearchStats{}, ErrNoLegalMove
	}
	strategy := g.strategyFor(g.state.ToMove)
	if strategy == nil {
		strategy = NewNegamaxEngine(g.tt, g.settings.Search)
	}
	move, stats, _ := g.search(ctx, strategy)
	if move == NoMove {
		return NoMove, stats, ErrNoLegalMove
	}
	return move, stats, nil
}

func (g *Game) search(ctx context.Context, strategy Strategy) (Move, SearchStats, bool) {
	probe := g.state.Clone()
	move, ok := strategy.ChooseMove(ctx, probe, g.settings.Difficulty, g.settings.Search.Timeout())
	stats := strategy.LastStats()
	if ok && probe.Board.IsEmpty(move.Row, move.Col) {
		return move, stats, false
	}
	move, ok = FallbackMove(probe)
	if !ok {
		return NoMove, stats, true
	}
	log.Debug().
		Str("player", g.state.ToMove.String()).
		Str("move", move.String()).
		Bool("aborted", stats.Aborted).
		Msg("fallback-move")
	return move, stats, true
}

func (g *Game) commitMove(move Move, entry HistoryEntry) (MoveResult, error) {
	player := g.state.ToMove
	if err := g.state.ApplyMove(move); err != nil {
		return MoveResult{}, err
	}

	entry.Move = move
	entry.Player = player
	entry.ElapsedMs = float64(time.Since(g.turnStart).Microseconds()) / 1000.0
	g.history.Push(entry)
	g.logMovePlayed(entry)

	if line, ok := g.state.Board.FindFiveInRow(CellFromPlayer(player)); ok {
		g.winningLine = line
		if player == PlayerBlack {
			g.status = StatusBlackWon
		} else {
			g.status = StatusWhiteWon
		}
		g.logWin(player)
	} else if g.state.Board.Full() {
		g.status = StatusDraw
		g.logWin(player)
	}
	g.turnStart = time.Now()

	return MoveResult{
		Valid:    true,
		Move:     move,
		Player:   player,
		Board:    g.state.Board.Rows(),
		GameOver: g.status != StatusRunning,
		Winner:   WinnerCode(g.status),
		Status:   g.status,
		Depth:    entry.Depth,
		Fallback: entry.Fallback,
	}, nil
}

// WinnerCode maps a status onto the 0/1/2 encoding used by the board rows.
func WinnerCode(status GameStatus) int {
	switch status {
	case StatusBlackWon:
		return int(CellBlack)
	case StatusWhiteWon:
		return int(CellWhite)
	default:
		return 0
	}
}

func (g *Game) logMatchup() {
	log.Debug().
		Int("boardSize", g.settings.BoardSize).
		Int("difficulty", g.settings.Difficulty).
		Str("black", g.settings.Black.String()).
		Str("white", g.settings.White.String()).
		Msg("game-reset")
}

func (g *Game) logMovePlayed(entry HistoryEntry) {
	log.Debug().
		Int("ply", g.history.Size()).
		Str("player", entry.Player.String()).
		Str("move", entry.Move.String()).
		Float64("elapsedMs", entry.ElapsedMs).
		Bool("ai", entry.IsAi).
		Int("depth", entry.Depth).
		Bool("fallback", entry.Fallback).
		Msg("move-played")
}

func (g *Game) logWin(player PlayerColor) {
	log.Debug().
		Str("status", g.status.String()).
		Str("lastMover", player.String()).
		Int("moves", g.state.MoveCount()).
		Msg("game-over")
}
