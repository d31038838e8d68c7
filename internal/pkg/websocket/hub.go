package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types pushed to thread subscribers
const (
	EventVoiceMessageCreated = "voice_message.created"
	EventVoiceMessageUpdated = "voice_message.updated"
)

// DefaultSendBuffer is the per-client outbound queue length
const DefaultSendBuffer = 64

// Hub maintains the set of active clients and broadcasts thread events to them
type Hub struct {
	// Registered clients organized by mentorship ID
	clients map[string]map[*Client]bool

	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	sendBuffer int
	logger     zerolog.Logger
}

// Event is one frame sent to thread subscribers
type Event struct {
	// Type of event, e.g. voice_message.created
	Type string `json:"type"`

	// Mentorship thread the event belongs to
	MentorshipID string `json:"mentorshipId"`

	// Event body, usually a voice message joined with its sender
	Payload any `json:"payload"`

	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger, sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Hub{
		broadcast:  make(chan *Event, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]map[*Client]bool),
		sendBuffer: sendBuffer,
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled, then disconnects every client
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for mentorshipID, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
		delete(h.clients, mentorshipID)
	}
	h.logger.Info().Msg("Websocket hub stopped")
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	mentorshipID := client.mentorshipID
	if _, ok := h.clients[mentorshipID]; !ok {
		h.clients[mentorshipID] = make(map[*Client]bool)
	}
	h.clients[mentorshipID][client] = true

	h.logger.Info().
		Str("mentorshipID", mentorshipID).
		Str("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	mentorshipID := client.mentorshipID
	clients, ok := h.clients[mentorshipID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, mentorshipID)
	}

	h.logger.Info().
		Str("mentorshipID", mentorshipID).
		Str("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

// broadcastEvent sends an event to all clients subscribed to its thread.
// Clients whose send buffer is full are dropped.
func (h *Hub) broadcastEvent(event *Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[event.MentorshipID]
	if !ok {
		h.logger.Debug().
			Str("mentorshipID", event.MentorshipID).
			Msg("No clients in thread for broadcast")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("mentorshipID", event.MentorshipID).
			Msg("Failed to marshal event for broadcast")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn().Str("userID", client.userID).Msg("Dropping slow websocket client")
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Str("mentorshipID", event.MentorshipID).
		Str("type", event.Type).
		Int("clientCount", len(clients)).
		Msg("Event broadcasted to thread")
}

// BroadcastToMentorship queues an event for the thread's subscribers.
// It returns without sending once the hub has stopped.
func (h *Hub) BroadcastToMentorship(mentorshipID, eventType string, payload any) {
	event := &Event{
		Type:         eventType,
		MentorshipID: mentorshipID,
		Payload:      payload,
		Timestamp:    time.Now().UTC(),
	}
	select {
	case h.broadcast <- event:
	case <-h.done:
	}
}

// GetClientsCount returns the number of connected clients for a thread
func (h *Hub) GetClientsCount(mentorshipID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[mentorshipID])
}
