package progress

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans import events out to connected websocket watchers. Publishing
// is fire-and-forget: a slow or dead client is dropped, never waited on,
// so the orchestrator's sequential timing is unaffected.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

type Stats struct {
	Watchers int `json:"watchers"`
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Add(ws *websocket.Conn) {
	h.mu.Lock()
	h.clients[ws] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

// Publish broadcasts an event. Safe on a nil hub so callers wired
// without a hub (CLI imports, tests) skip eventing entirely.
func (h *Hub) Publish(ev ImportEvent) {
	if h == nil {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	b = append(b, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	for ws := range h.clients {
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(h.clients, ws)
		}
	}
}

func (h *Hub) Stats() Stats {
	if h == nil {
		return Stats{}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{Watchers: len(h.clients)}
}
