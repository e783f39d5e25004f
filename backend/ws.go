package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/raddah/GomokuMaster/engine"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// handleWS streams updates for one game. Observers receive the current state on
// connect and may send {"type":"request_state"} at any time.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.registry.Get(id); err != nil {
		writeEngineError(w, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Str("gameId", id).Msg("ws-upgrade-failed")
		return
	}
	client := &Client{gameID: id, send: make(chan []byte, 16)}
	controller, err := s.joinRoom(client)
	if err != nil {
		// send is closed, so this only writes the close frame.
		_ = writeWSWithHeartbeat(conn, client.send, wsIdlePingInterval)
		conn.Close()
		return
	}
	s.hub.Send(client, "state", statusFromSnapshot(id, controller.Snapshot()))

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send, wsIdlePingInterval); err != nil {
			log.Debug().Err(err).Str("gameId", id).Msg("ws-write-failed")
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_state":
			current, err := s.registry.Get(id)
			if err != nil {
				s.hub.Unregister(client)
				return
			}
			s.hub.Send(client, "state", statusFromSnapshot(id, current.Snapshot()))
		}
	}
}

// joinRoom registers client and then confirms its game still exists. A game
// removed in between has already had its room closed, so the client is
// dropped instead of waiting in an orphaned room.
func (s *Server) joinRoom(client *Client) (*engine.GameController, error) {
	s.hub.Register(client)
	controller, err := s.registry.Get(client.gameID)
	if err != nil {
		s.hub.Unregister(client)
		return nil, err
	}
	return controller, nil
}
