package wormhole

import (
	"encoding/json"
	"log"
	"sync"

	"golang.org/x/net/websocket"
)

// session is one connected client. Writes go through a buffered
// channel so a slow reader can't stall the hub; overflow drops the
// note and lets the client resync on its next poll.
type session struct {
	steadID string
	send    chan Note
}

const sendBuffer = 16

// Hub fans Notes out to every session subscribed to a stead.
type Hub struct {
	mu       sync.RWMutex
	sessions map[*session]struct{}
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[*session]struct{})}
}

// Send delivers note to every session watching note.SteadID.
func (h *Hub) Send(note Note) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.sessions {
		if s.steadID != note.SteadID {
			continue
		}
		select {
		case s.send <- note:
		default:
			log.Printf("wormhole: dropping %s note for slow session on stead %s", note.Kind, s.steadID)
		}
	}
}

// Broadcast delivers note to every connected session regardless of
// stead, for server-wide announcements.
func (h *Hub) Broadcast(note Note) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.sessions {
		select {
		case s.send <- note:
		default:
		}
	}
}

// Sessions reports how many clients are connected.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) register(s *session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(s *session) {
	h.mu.Lock()
	delete(h.sessions, s)
	h.mu.Unlock()
}

// Handler returns the websocket endpoint. Clients connect with
// ?stead=<id> and receive a json Note per event until they hang up.
func (h *Hub) Handler() websocket.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		defer conn.Close()

		steadID := ""
		if req := conn.Request(); req != nil {
			steadID = req.URL.Query().Get("stead")
		}
		if steadID == "" {
			return
		}

		s := &session{
			steadID: steadID,
			send:    make(chan Note, sendBuffer),
		}
		h.register(s)
		defer h.unregister(s)

		// reader goroutine: we ignore client payloads, but reading is
		// how we notice the peer hanging up
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			var discard json.RawMessage
			for {
				if err := websocket.JSON.Receive(conn, &discard); err != nil {
					return
				}
			}
		}()

		enc := json.NewEncoder(conn)
		for {
			select {
			case note := <-s.send:
				if err := enc.Encode(note); err != nil {
					return
				}
			case <-gone:
				return
			}
		}
	})
}
