package websocket

import (
	"testing"
	"time"

	"ai-videobrain-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                  { return nil }

func (h *Hub) clientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func TestSendProgressDropsSlowClientWithoutClosingTwice(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	go hub.Run()

	userID := uuid.New()
	client := &Client{Hub: hub, UserID: userID, Send: make(chan []byte)}
	hub.register <- client

	// The client never drains Send, so the hub must drop it. Run owns the
	// close of Send; a second close from the send path would panic the hub
	// goroutine and every later register would hang.
	hub.SendProgress(userID, dto.ProgressEvent{Stage: "analyzing"})

	deadline := time.After(2 * time.Second)
	for hub.clientCount(userID) != 0 {
		select {
		case <-deadline:
			t.Fatal("slow client was never unregistered")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// The hub goroutine must still be alive after the drop.
	second := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
	select {
	case hub.register <- second:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped accepting registrations after dropping a client")
	}

	hub.SendProgress(userID, dto.ProgressEvent{Stage: "resolving"})
	select {
	case msg := <-second.Send:
		assert.Contains(t, string(msg), "resolving")
	case <-time.After(2 * time.Second):
		t.Fatal("healthy client received nothing")
	}

	_, open := <-client.Send
	assert.False(t, open, "dropped client's Send channel should be closed exactly once")
}
