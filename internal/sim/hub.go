package sim

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// hub fans applied-change events out to the connected WebSocket clients.
type hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
	log   *zap.Logger
}

func newHub(log *zap.Logger) *hub {
	return &hub{
		conns: make(map[*websocket.Conn]bool),
		log:   log,
	}
}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
	h.log.Info("event subscriber connected",
		zap.String("remote_addr", conn.RemoteAddr().String()))
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if h.conns[conn] {
		delete(h.conns, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// broadcast sends an event to every subscriber, dropping the ones that fail.
func (h *hub) broadcast(event any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(event); err != nil {
			h.log.Warn("dropping event subscriber",
				zap.String("remote_addr", conn.RemoteAddr().String()),
				zap.Error(err))
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}
