package main

import (
	"encoding/json"
	"testing"
	"time"
)

func readHubMessage(t *testing.T, c *Client) wsMessage {
	t.Helper()
	select {
	case data, ok := <-c.send:
		if !ok {
			t.Fatalf("client channel closed")
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for hub message")
	}
	return wsMessage{}
}

func TestHubPublishesToRoomOnly(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	defer close(done)
	go hub.Run(done)

	a := &Client{gameID: "a", send: make(chan []byte, 4)}
	b := &Client{gameID: "b", send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)

	hub.Publish("a", "move", map[string]int{"row": 1})
	msg := readHubMessage(t, a)
	if msg.Type != "move" || string(msg.Payload) != `{"row":1}` {
		t.Fatalf("unexpected message %+v", msg)
	}
	select {
	case <-b.send:
		t.Fatalf("message leaked to another game")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestHubUnregisterAndCloseGame(t *testing.T) {
	hub := NewHub()
	a1 := &Client{gameID: "a", send: make(chan []byte, 1)}
	a2 := &Client{gameID: "a", send: make(chan []byte, 1)}
	hub.Register(a1)
	hub.Register(a2)

	hub.Unregister(a1)
	if _, ok := <-a1.send; ok {
		t.Fatalf("expected unregistered client channel to be closed")
	}
	hub.Unregister(a1)
	if hub.Send(a1, "state", nil) {
		t.Fatalf("send to an unregistered client should be dropped")
	}
	if !hub.Send(a2, "state", map[string]bool{"ok": true}) {
		t.Fatalf("send to a registered client failed")
	}
	<-a2.send

	hub.CloseGame("a")
	if _, ok := <-a2.send; ok {
		t.Fatalf("expected CloseGame to close observer channels")
	}
	if hub.HasClients("a") {
		t.Fatalf("room should be gone after CloseGame")
	}
	hub.Unregister(a2)
}

func TestHubPublishWithoutObserversIsNoop(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 200; i++ {
		hub.Publish("empty", "move", i)
	}
	if len(hub.broadcast) != 0 {
		t.Fatalf("expected nothing queued without observers, got %d", len(hub.broadcast))
	}
}
