package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message is a live-update notification pushed to connected dashboards,
// e.g. a freshly generated outfit for the history view.
type Message struct {
	Type     string `json:"type"`
	OwnerID  string `json:"owner_id,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// OutfitCreated builds the notification sent after a successful generation.
func OutfitCreated(ownerID, imageURL string) Message {
	return Message{
		Type:     "outfit_created",
		OwnerID:  ownerID,
		ImageURL: imageURL,
	}
}

// Hub maintains the set of active WebSocket clients and broadcasts messages.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast delivers msg to every client whose owner matches msg.OwnerID.
// Messages without an owner go to everyone.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if msg.OwnerID != "" && c.ownerID != msg.OwnerID {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop message to avoid blocking
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
