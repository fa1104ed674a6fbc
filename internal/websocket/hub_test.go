package websocket

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub, ownerID string) *Client {
	return &Client{
		hub:     hub,
		conn:    nil,
		ownerID: ownerID,
		send:    make(chan []byte, sendBufferSize),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub, "alice@example.com")
	c2 := mockClient(hub, "bob@example.com")

	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Unregister(c1)

	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}

	hub.Unregister(c2)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub, "alice@example.com")
	hub.Register(c)
	hub.Unregister(c)
	// Should not panic
	hub.Unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestBroadcastToOwner(t *testing.T) {
	hub := NewHub(slog.Default())

	alice := mockClient(hub, "alice@example.com")
	bob := mockClient(hub, "bob@example.com")
	hub.Register(alice)
	hub.Register(bob)

	hub.Broadcast(OutfitCreated("alice@example.com", "https://cdn.example.com/a/1.jpg"))

	select {
	case data := <-alice.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Type != "outfit_created" {
			t.Errorf("type = %q, want outfit_created", msg.Type)
		}
		if msg.ImageURL != "https://cdn.example.com/a/1.jpg" {
			t.Errorf("image_url = %q", msg.ImageURL)
		}
	case <-time.After(time.Second):
		t.Fatal("alice did not receive broadcast")
	}

	select {
	case <-bob.send:
		t.Fatal("bob should not receive alice's broadcast")
	default:
	}
}

func TestBroadcastFullBufferDoesNotBlock(t *testing.T) {
	hub := NewHub(slog.Default())

	c := mockClient(hub, "alice@example.com")
	hub.Register(c)

	// Fill the buffer, then broadcast more; Broadcast must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBufferSize+5; i++ {
			hub.Broadcast(OutfitCreated("alice@example.com", "https://cdn.example.com/a/x.jpg"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a full client buffer")
	}
}
