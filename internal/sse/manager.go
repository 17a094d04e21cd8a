package sse

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/galleriaapp/galleria-server/internal/id"
)

// Client represents a connected SSE client.
type Client struct {
	ID     string
	Events chan Event
	Done   chan struct{}
}

// Manager manages SSE client connections and event broadcasting.
type Manager struct {
	clients           map[string]*Client
	events            chan Event
	logger            *slog.Logger
	heartbeatInterval time.Duration
	wg                sync.WaitGroup
	mu                sync.RWMutex

	// shutdown tracks whether the events channel has been closed so
	// Emit never sends on a closed channel.
	shutdownMu sync.RWMutex
	shutdown   bool

	// reload state lets status endpoints report an in-flight market
	// snapshot reload without racing the watcher.
	reloadMu    sync.RWMutex
	isReloading bool
}

// NewManager creates a new SSE manager.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		clients:           make(map[string]*Client),
		events:            make(chan Event, 1000),
		logger:            logger,
		heartbeatInterval: 30 * time.Second,
	}
}

// Start begins the event broadcasting loop. Blocks until the context is
// cancelled, so run it in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	m.logger.Info("starting SSE manager")

	heartbeat := time.NewTicker(m.heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("SSE manager stopping")
			m.closeAllClients()
			return
		case event, ok := <-m.events:
			if !ok {
				m.logger.Info("SSE event channel closed")
				m.closeAllClients()
				return
			}
			m.broadcast(event)
		case <-heartbeat.C:
			m.broadcast(NewHeartbeatEvent())
		}
	}
}

// Shutdown gracefully stops the manager, draining buffered events before
// closing client connections. Delivery of the drained events to slow
// clients is not guaranteed.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.logger.Info("shutting down SSE manager")

	m.shutdownMu.Lock()
	if m.shutdown {
		m.shutdownMu.Unlock()
		return nil
	}
	m.shutdown = true
	close(m.events)
	m.shutdownMu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range m.events {
			m.broadcast(event)
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("SSE shutdown timed out draining events")
	}

	m.closeAllClients()
	m.wg.Wait()
	return nil
}

// Connect registers a new client and returns it. The caller owns the
// connection lifecycle and must call Disconnect when the stream ends.
func (m *Manager) Connect() (*Client, error) {
	clientID, err := id.Generate("sse")
	if err != nil {
		return nil, err
	}

	client := &Client{
		ID:     clientID,
		Events: make(chan Event, 100),
		Done:   make(chan struct{}),
	}

	m.mu.Lock()
	m.clients[client.ID] = client
	count := len(m.clients)
	m.mu.Unlock()

	m.logger.Info("SSE client connected",
		"client_id", client.ID,
		"total_clients", count)

	return client, nil
}

// Disconnect removes a client and closes its channels.
func (m *Manager) Disconnect(clientID string) {
	m.mu.Lock()
	client, exists := m.clients[clientID]
	if exists {
		delete(m.clients, clientID)
	}
	count := len(m.clients)
	m.mu.Unlock()

	if exists {
		close(client.Done)
		m.logger.Info("SSE client disconnected",
			"client_id", clientID,
			"total_clients", count)
	}
}

// Emit queues an event for broadcasting. Drops the event if the buffer
// is full or the manager is shutting down.
func (m *Manager) Emit(event any) {
	evt, ok := event.(Event)
	if !ok {
		m.logger.Warn("emit called with non-Event type", "type", event)
		return
	}

	m.shutdownMu.RLock()
	defer m.shutdownMu.RUnlock()
	if m.shutdown {
		m.logger.Debug("event dropped, manager shut down", "event_type", evt.Type)
		return
	}

	select {
	case m.events <- evt:
	default:
		m.logger.Warn("event channel full, dropping event", "event_type", evt.Type)
	}
}

// broadcast sends an event to all connected clients. Slow clients with
// full buffers have the event dropped rather than blocking the loop.
func (m *Manager) broadcast(event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sent := 0
	dropped := 0
	for _, client := range m.clients {
		select {
		case client.Events <- event:
			sent++
		default:
			dropped++
			m.logger.Warn("client event buffer full, dropping event",
				"client_id", client.ID,
				"event_type", event.Type)
		}
	}

	if event.Type != EventHeartbeat && (sent > 0 || dropped > 0) {
		m.logger.Debug("event broadcast",
			"event_type", event.Type,
			"sent", sent,
			"dropped", dropped)
	}
}

// closeAllClients closes every connected client.
func (m *Manager) closeAllClients() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, client := range m.clients {
		close(client.Done)
		delete(m.clients, id)
	}
	m.logger.Info("all SSE clients closed")
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// IsReloading reports whether a market snapshot reload is in progress.
func (m *Manager) IsReloading() bool {
	m.reloadMu.RLock()
	defer m.reloadMu.RUnlock()
	return m.isReloading
}

// SetReloading marks a market snapshot reload as started or finished.
func (m *Manager) SetReloading(reloading bool) {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()
	m.isReloading = reloading
}
