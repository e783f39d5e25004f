package main

import (
	"fmt"

	"github.com/raddah/GomokuMaster/engine"
	"github.com/samber/lo"
)

type newGameRequest struct {
	BoardSize  *int   `json:"boardSize"`
	Difficulty *int   `json:"difficulty"`
	AiPlayer   *int   `json:"aiPlayer"`
	Strategy   string `json:"strategy"`
}

type newGameResponse struct {
	GameID     string `json:"gameId"`
	BoardSize  int    `json:"boardSize"`
	Difficulty int    `json:"difficulty"`
	AiPlayer   int    `json:"aiPlayer"`
	Strategy   string `json:"strategy"`
	Message    string `json:"message"`
}

type makeMoveRequest struct {
	GameID   string `json:"gameId"`
	Row      *int   `json:"row"`
	Col      *int   `json:"col"`
	Opponent string `json:"opponent"`
}

type gameRequest struct {
	GameID string `json:"gameId"`
}

type resetRequest struct {
	GameID     string `json:"gameId"`
	BoardSize  *int   `json:"boardSize"`
	Difficulty *int   `json:"difficulty"`
}

type resetResponse struct {
	Message    string `json:"message"`
	BoardSize  int    `json:"boardSize"`
	Difficulty int    `json:"difficulty"`
}

type moveDTO struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type moveResponse struct {
	Valid    bool     `json:"valid"`
	Board    [][]int  `json:"board,omitempty"`
	GameOver bool     `json:"gameOver"`
	Winner   *int     `json:"winner"`
	Message  string   `json:"message"`
	AiMove   *moveDTO `json:"aiMove,omitempty"`
	AiError  string   `json:"aiError,omitempty"`
	Fallback bool     `json:"fallback,omitempty"`
}

type hintResponse struct {
	Move  moveDTO `json:"move"`
	Depth int     `json:"depth"`
	Nodes int64   `json:"nodes"`
	Score int     `json:"score"`
}

type historyEntryDTO struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsedMs"`
	IsAi      bool    `json:"isAi"`
	Depth     int     `json:"depth,omitempty"`
	Fallback  bool    `json:"fallback,omitempty"`
	Nodes     int64   `json:"nodes,omitempty"`
}

type gameStatusResponse struct {
	GameID      string            `json:"gameId"`
	BoardSize   int               `json:"boardSize"`
	Difficulty  int               `json:"difficulty"`
	Black       string            `json:"black"`
	White       string            `json:"white"`
	Status      string            `json:"status"`
	NextPlayer  int               `json:"nextPlayer"`
	HumanToMove bool              `json:"humanToMove"`
	Board       [][]int           `json:"board"`
	GameOver    bool              `json:"gameOver"`
	Winner      *int              `json:"winner"`
	WinningLine []moveDTO         `json:"winningLine"`
	History     []historyEntryDTO `json:"history"`
	MoveCount   int               `json:"moveCount"`
}

// moveEvent is pushed to websocket observers after every committed move.
type moveEvent struct {
	GameID   string  `json:"gameId"`
	Move     moveDTO `json:"move"`
	Player   int     `json:"player"`
	IsAi     bool    `json:"isAi"`
	Board    [][]int `json:"board"`
	GameOver bool    `json:"gameOver"`
	Winner   *int    `json:"winner"`
}

type ttCacheEntryDTO struct {
	Hash       string  `json:"hash"`
	Hits       uint32  `json:"hits"`
	Depth      int     `json:"depth"`
	Score      int     `json:"score"`
	Flag       string  `json:"flag"`
	BestMove   moveDTO `json:"bestMove"`
	GenWritten uint32  `json:"genWritten"`
}

type ttCacheResponse struct {
	Count      int               `json:"count"`
	Capacity   int               `json:"capacity"`
	Usage      float64           `json:"usage"`
	Generation uint32            `json:"generation"`
	Items      []ttCacheEntryDTO `json:"items"`
	Offset     int               `json:"offset"`
	Limit      int               `json:"limit"`
	Total      int               `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toMoveDTO(move engine.Move) moveDTO {
	return moveDTO{Row: move.Row, Col: move.Col}
}

// winnerPtr renders "no winner" as JSON null.
func winnerPtr(code int) *int {
	if code == 0 {
		return nil
	}
	return &code
}

func playerToInt(player engine.PlayerColor) int {
	return int(engine.CellFromPlayer(player))
}

func moveResponseFrom(result engine.MoveResult, message string) moveResponse {
	return moveResponse{
		Valid:    result.Valid,
		Board:    result.Board,
		GameOver: result.GameOver,
		Winner:   winnerPtr(result.Winner),
		Message:  message,
	}
}

func moveEventFrom(gameID string, result engine.MoveResult, isAi bool) moveEvent {
	return moveEvent{
		GameID:   gameID,
		Move:     toMoveDTO(result.Move),
		Player:   playerToInt(result.Player),
		IsAi:     isAi,
		Board:    result.Board,
		GameOver: result.GameOver,
		Winner:   winnerPtr(result.Winner),
	}
}

func historyToDTO(entries []engine.HistoryEntry) []historyEntryDTO {
	return lo.Map(entries, func(entry engine.HistoryEntry, _ int) historyEntryDTO {
		return historyEntryDTO{
			Row:       entry.Move.Row,
			Col:       entry.Move.Col,
			Player:    playerToInt(entry.Player),
			ElapsedMs: entry.ElapsedMs,
			IsAi:      entry.IsAi,
			Depth:     entry.Depth,
			Fallback:  entry.Fallback,
			Nodes:     entry.Nodes,
		}
	})
}

func statusFromSnapshot(gameID string, snap engine.GameSnapshot) gameStatusResponse {
	return gameStatusResponse{
		GameID:      gameID,
		BoardSize:   snap.Settings.BoardSize,
		Difficulty:  snap.Settings.Difficulty,
		Black:       snap.Settings.Black.String(),
		White:       snap.Settings.White.String(),
		Status:      snap.Status.String(),
		NextPlayer:  playerToInt(snap.ToMove),
		HumanToMove: snap.HumanToMove,
		Board:       snap.Board,
		GameOver:    snap.Status != engine.StatusRunning,
		Winner:      winnerPtr(snap.Winner),
		WinningLine: lo.Map(snap.WinningLine, func(m engine.Move, _ int) moveDTO { return toMoveDTO(m) }),
		History:     historyToDTO(snap.History),
		MoveCount:   snap.MoveCount,
	}
}

func cacheResponseFrom(cache engine.CacheSnapshot, offset, limit int) ttCacheResponse {
	usage := 0.0
	if cache.Capacity > 0 {
		usage = float64(cache.Count) / float64(cache.Capacity)
	}
	return ttCacheResponse{
		Count:      cache.Count,
		Capacity:   cache.Capacity,
		Usage:      usage,
		Generation: cache.Generation,
		Items: lo.Map(cache.Entries, func(entry engine.TTEntry, _ int) ttCacheEntryDTO {
			return ttCacheEntryDTO{
				Hash:       fmt.Sprintf("0x%016x", entry.Key),
				Hits:       entry.Hits,
				Depth:      entry.Depth,
				Score:      entry.Score,
				Flag:       entry.Flag.String(),
				BestMove:   toMoveDTO(entry.BestMove),
				GenWritten: entry.GenWritten,
			}
		}),
		Offset: offset,
		Limit:  limit,
		Total:  cache.Total,
	}
}
