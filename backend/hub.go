package main

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub fans game updates out to the websocket observers of each game.
type Hub struct {
	mu        sync.Mutex
	rooms     map[string]map[*Client]struct{}
	broadcast chan roomMessage
}

type Client struct {
	gameID string
	send   chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type roomMessage struct {
	gameID string
	data   []byte
}

func NewHub() *Hub {
	return &Hub{
		rooms:     make(map[string]map[*Client]struct{}),
		broadcast: make(chan roomMessage, 64),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			h.closeAll()
			return
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[msg.gameID] {
				client.sendRaw(msg.data)
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a message for every observer of gameID. It never blocks;
// updates are dropped when the queue is full.
func (h *Hub) Publish(gameID string, msgType string, payload any) {
	if !h.HasClients(gameID) {
		return
	}
	data, err := json.Marshal(wsMessage{Type: msgType, Payload: mustMarshal(payload)})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- roomMessage{gameID: gameID, data: data}:
	default:
		log.Warn().Str("gameId", gameID).Str("type", msgType).Msg("hub-queue-full")
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.gameID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.gameID] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[c.gameID]
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, c.gameID)
	}
}

// CloseGame disconnects every observer of a deleted or expired game.
func (h *Hub) CloseGame(gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.rooms[gameID] {
		close(client.send)
	}
	delete(h.rooms, gameID)
}

func (h *Hub) HasClients(gameID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[gameID]) > 0
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for client := range room {
			close(client.send)
		}
		delete(h.rooms, id)
	}
}

// Send delivers a message to a single observer if it is still registered.
func (h *Hub) Send(c *Client, msgType string, payload any) bool {
	data, err := json.Marshal(wsMessage{Type: msgType, Payload: mustMarshal(payload)})
	if err != nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[c.gameID][c]; !ok {
		return false
	}
	c.sendRaw(data)
	return true
}

func (c *Client) sendRaw(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
