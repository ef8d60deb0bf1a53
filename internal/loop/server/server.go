// Package server tracks the terminal sessions attached to one process.
// Each session plays its own round; the hub only knows who is connected
// and tells everyone when the process is going away.
package server

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Lobby is the interface clients use to announce themselves.
// Decouples the Client from the concrete Hub, enabling tests with fakes.
type Lobby interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	Players() int
}

// Hub keeps the registry of connected clients.
type Hub struct {
	clients      map[int]*ClientHandle
	nextClientID int
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
	logger       *log.Logger
}

// Compile-time check that Hub implements Lobby.
var _ Lobby = (*Hub)(nil)

// ClientHandle represents a client's connection to the hub.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	Joined   time.Time        // When the client registered
	EventsCh chan ClientEvent // Events sent to the client
}

// ClientEvent represents an event sent from the hub to a client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// registrationPoll is how often Run drains registrations.
const registrationPoll = 50 * time.Millisecond

// NewHub creates an empty hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		logger:       logger,
	}
}

// Run applies registrations until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(registrationPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.processRegistrations()
			return
		case <-ticker.C:
			h.processRegistrations()
		}
	}
}

// Shutdown notifies all connected clients and waits for them to disconnect
// (up to the given timeout). The caller should cancel the hub context after
// Shutdown returns.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.processRegistrations()

	h.mu.RLock()
	for _, handle := range h.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	notified := len(h.clients)
	h.mu.RUnlock()
	h.logger.Info("shutdown broadcast", "players", notified)

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			h.logger.Warn("shutdown timed out", "players", h.Players())
			return
		case <-ticker.C:
			h.processRegistrations()
			if h.Players() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (h *Hub) RegisterClient(username string) *ClientHandle {
	h.mu.Lock()
	id := h.nextClientID
	h.nextClientID++
	h.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		Joined:   time.Now(),
		EventsCh: make(chan ClientEvent, 16),
	}

	h.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the hub.
func (h *Hub) UnregisterClient(clientID int) {
	h.unregisterCh <- clientID
}

// Players returns the number of registered clients.
func (h *Hub) Players() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// processRegistrations handles pending client registrations/unregistrations.
func (h *Hub) processRegistrations() {
	for {
		select {
		case handle := <-h.registerCh:
			h.mu.Lock()
			h.clients[handle.ID] = handle
			h.mu.Unlock()
			h.logger.Debug("client joined", "id", handle.ID, "user", handle.Username)
		case clientID := <-h.unregisterCh:
			h.mu.Lock()
			if handle, ok := h.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(h.clients, clientID)
				h.logger.Debug("client left", "id", clientID, "user", handle.Username,
					"played", time.Since(handle.Joined).Round(time.Second))
			}
			h.mu.Unlock()
		default:
			return
		}
	}
}
