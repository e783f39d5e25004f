package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/raddah/GomokuMaster/engine"
	"github.com/rs/zerolog/log"
)

const (
	aiPlayerNone = iota
	aiPlayerBlack
	aiPlayerWhite
	aiPlayerBoth
)

type Server struct {
	cfg      ServerConfig
	registry *Registry
	hub      *Hub
	events   EventSink
	engine   *engine.ConfigStore
}

func NewServer(cfg ServerConfig, registry *Registry, hub *Hub, events EventSink) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
		hub:      hub,
		events:   events,
		engine:   engine.NewConfigStore(cfg.Engine),
	}
	registry.OnExpire(s.gameExpired)
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/new_game", s.handleNewGame)
	r.Post("/api/make_move", s.handleMakeMove)
	r.Post("/api/ai_move", s.handleAIMove)
	r.Post("/api/hint", s.handleHint)
	r.Post("/api/reset", s.handleReset)

	r.Route("/api/games/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetGame)
		r.Delete("/", s.handleDeleteGame)
		r.Get("/cache", s.handleGetCache)
		r.Delete("/cache", s.handleClearCache)
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.engine.Get())
	})
	r.Post("/api/config", s.handleUpdateConfig)

	r.Get("/ws/{id}", s.handleWS)
	return r
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	settings := engine.DefaultGameSettings()
	settings.BoardSize = intOr(req.BoardSize, s.cfg.DefaultBoardSize)
	settings.Difficulty = intOr(req.Difficulty, s.cfg.DefaultDifficulty)
	settings.Search = s.engine.Get()

	strategy, err := engine.ParseMoveSource(req.Strategy)
	if err != nil || strategy.IsHuman() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown strategy %q", req.Strategy))
		return
	}
	aiPlayer := intOr(req.AiPlayer, aiPlayerWhite)
	switch aiPlayer {
	case aiPlayerNone:
		settings.Black, settings.White = engine.SourceHuman, engine.SourceHuman
	case aiPlayerBlack:
		settings.Black, settings.White = strategy, engine.SourceHuman
	case aiPlayerWhite:
		settings.Black, settings.White = engine.SourceHuman, strategy
	case aiPlayerBoth:
		settings.Black, settings.White = strategy, strategy
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("aiPlayer %d must be 0..3", aiPlayer))
		return
	}

	id, controller, err := s.registry.Create(settings)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	settings = controller.Settings()
	s.events.Emit(r.Context(), "game_created", map[string]any{
		"gameId":     id,
		"boardSize":  settings.BoardSize,
		"difficulty": settings.Difficulty,
		"black":      settings.Black.String(),
		"white":      settings.White.String(),
	})
	writeJSON(w, http.StatusOK, newGameResponse{
		GameID:     id,
		BoardSize:  settings.BoardSize,
		Difficulty: settings.Difficulty,
		AiPlayer:   aiPlayer,
		Strategy:   strategy.String(),
		Message:    "Game created successfully",
	})
}

func (s *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	var req makeMoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	controller, err := s.registry.Get(req.GameID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if req.Row == nil || req.Col == nil {
		writeJSON(w, http.StatusBadRequest, moveResponse{Valid: false, Message: "row and col are required"})
		return
	}
	result, err := controller.ApplyHumanMove(engine.NewMove(*req.Row, *req.Col))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, moveResponse{Valid: false, Message: err.Error()})
		return
	}
	s.moveCommitted(r, req.GameID, result, false)
	resp := moveResponseFrom(result, "Move successful")

	if req.Opponent == "ai" && !result.GameOver {
		aiResult, err := controller.RequestAIMove(r.Context())
		if err != nil {
			log.Warn().Err(err).Str("gameId", req.GameID).Msg("ai-reply-failed")
			resp.AiError = err.Error()
		} else {
			s.moveCommitted(r, req.GameID, aiResult, true)
			aiMove := toMoveDTO(aiResult.Move)
			resp.AiMove = &aiMove
			resp.Board = aiResult.Board
			resp.GameOver = aiResult.GameOver
			resp.Winner = winnerPtr(aiResult.Winner)
			resp.Fallback = aiResult.Fallback
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAIMove(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	controller, err := s.registry.Get(req.GameID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	result, err := controller.RequestAIMove(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, moveResponse{Valid: false, Message: err.Error()})
		return
	}
	s.moveCommitted(r, req.GameID, result, true)
	resp := moveResponseFrom(result, "AI move")
	aiMove := toMoveDTO(result.Move)
	resp.AiMove = &aiMove
	resp.Fallback = result.Fallback
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	controller, err := s.registry.Get(req.GameID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	move, stats, err := controller.SuggestMove(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	hint := hintResponse{Move: toMoveDTO(move), Depth: stats.CompletedDepths, Nodes: stats.Nodes, Score: stats.BestScore}
	s.hub.Publish(req.GameID, "hint", hint)
	writeJSON(w, http.StatusOK, hint)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	controller, err := s.registry.Get(req.GameID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	settings := controller.Settings()
	settings.BoardSize = intOr(req.BoardSize, s.cfg.DefaultBoardSize)
	settings.Difficulty = intOr(req.Difficulty, s.cfg.DefaultDifficulty)
	settings.Search = s.engine.Get()
	if err := controller.Reset(settings); err != nil {
		writeEngineError(w, err)
		return
	}
	settings = controller.Settings()
	s.hub.Publish(req.GameID, "reset", statusFromSnapshot(req.GameID, controller.Snapshot()))
	s.events.Emit(r.Context(), "game_reset", map[string]any{
		"gameId":     req.GameID,
		"boardSize":  settings.BoardSize,
		"difficulty": settings.Difficulty,
	})
	writeJSON(w, http.StatusOK, resetResponse{
		Message:    "Game reset successfully",
		BoardSize:  settings.BoardSize,
		Difficulty: settings.Difficulty,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	controller, err := s.registry.Get(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusFromSnapshot(id, controller.Snapshot()))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.registry.Delete(id) {
		writeEngineError(w, ErrUnknownGame)
		return
	}
	s.hub.CloseGame(id)
	s.events.Emit(r.Context(), "game_deleted", map[string]any{"gameId": id})
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "gameId": id})
}

func (s *Server) handleGetCache(w http.ResponseWriter, r *http.Request) {
	controller, err := s.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	writeJSON(w, http.StatusOK, cacheResponseFrom(controller.Cache(offset, limit), offset, limit))
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	controller, err := s.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	controller.ClearCache()
	writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
}

// handleUpdateConfig replaces the engine defaults used by games created or
// reset from now on. Running searches keep their settings.
func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	config := s.engine.Get()
	if !decodeJSON(w, r, &config) {
		return
	}
	if err := config.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.engine.Update(config)
	log.Info().
		Int("timeoutMs", config.AiTimeoutMs).
		Bool("iterativeDeepening", config.AiIterativeDeepening).
		Int("ttSize", config.AiTtSize).
		Msg("engine-config-updated")
	writeJSON(w, http.StatusOK, config)
}

func (s *Server) moveCommitted(r *http.Request, gameID string, result engine.MoveResult, isAi bool) {
	s.hub.Publish(gameID, "move", moveEventFrom(gameID, result, isAi))
	s.events.Emit(r.Context(), "move", map[string]any{
		"gameId":   gameID,
		"row":      result.Move.Row,
		"col":      result.Move.Col,
		"player":   playerToInt(result.Player),
		"ai":       isAi,
		"depth":    result.Depth,
		"fallback": result.Fallback,
	})
	if result.GameOver {
		s.events.Emit(r.Context(), "game_over", map[string]any{
			"gameId": gameID,
			"status": result.Status.String(),
			"winner": result.Winner,
		})
	}
}

func (s *Server) gameExpired(id string) {
	s.hub.CloseGame(id)
	s.events.Emit(context.Background(), "game_expired", map[string]any{"gameId": id})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return false
	}
	return true
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownGame):
		writeError(w, http.StatusNotFound, "Game not found")
	case errors.Is(err, ErrTooManyGames):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func intOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
