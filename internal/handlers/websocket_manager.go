package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Manager upgrades connections and keeps track of open ones.
type Manager struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewWebSocketManager(logger *slog.Logger) *Manager {
	return &Manager{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS is handled by the router middleware.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Upgrade switches the request to the websocket protocol and registers the
// connection.
func (m *Manager) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.conns[conn] = struct{}{}
	m.mu.Unlock()

	return conn, nil
}

// Release unregisters and closes the connection.
func (m *Manager) Release(conn *websocket.Conn) {
	m.mu.Lock()
	delete(m.conns, conn)
	m.mu.Unlock()

	if err := conn.Close(); err != nil {
		m.logger.Debug("Error closing websocket", "error", err)
	}
}

// Count returns the number of open connections.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}

// CloseAll closes every open connection, used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(m.conns))
	for conn := range m.conns {
		conns = append(conns, conn)
	}
	m.mu.Unlock()

	for _, conn := range conns {
		m.Release(conn)
	}
}
