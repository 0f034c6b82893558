package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rahuldey/uniroutine/internal/app/models"
)

// Event is the payload broadcast to connected timetable dashboards
type Event struct {
	Event   string          `json:"event"`
	Routine *models.Routine `json:"routine"`
}

// Hub maintains the set of connected clients and fans routine lifecycle
// events out to them. There is a single feed; every client receives every
// event.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu     sync.RWMutex
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run services registrations and broadcasts. It is started once at boot and
// runs for the life of the process.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case payload := <-h.broadcast:
			h.broadcastPayload(payload)
		}
	}
}

// Publish broadcasts a routine lifecycle event to every connected client.
// It never blocks the caller; a full broadcast queue drops the event.
func (h *Hub) Publish(event string, routine *models.Routine) {
	payload, err := json.Marshal(Event{Event: event, Routine: routine})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal routine event")
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn().Str("event", event).Msg("Broadcast queue full, event dropped")
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Int("clients", len(h.clients)).
		Msg("Realtime client connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.Info().
			Int64("userID", client.userID).
			Int("clients", len(h.clients)).
			Msg("Realtime client disconnected")
	}
}

func (h *Hub) broadcastPayload(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Slow consumer; drop the event for this client rather than
			// stall the whole feed.
			h.logger.Debug().Int64("userID", client.userID).Msg("Client send buffer full, event dropped")
		}
	}
}
