// ws/hub.go
package ws

import (
	"sync"

	"github.com/rs/zerolog"
)

// Event is a change notification pushed to a user's connected clients.
// Type is "<entity>_<created|updated|deleted>".
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Conn is the subset of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

const sendBuffer = 64

// client pairs a connection with its outbound queue. A dedicated writer
// goroutine drains the queue so a slow reader never blocks publishers.
type client struct {
	conn Conn
	send chan Event
}

// Hub fans entity change events out to websocket clients, keyed by the
// owning user so no client sees another user's changes.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[Conn]*client
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[Conn]*client),
		log:     log,
	}
}

// Register starts a writer goroutine for conn. The caller must pair it
// with Unregister when the connection's read loop ends.
func (h *Hub) Register(userID string, conn Conn) {
	cl := &client{conn: conn, send: make(chan Event, sendBuffer)}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[Conn]*client)
	}
	h.clients[userID][conn] = cl
	h.mu.Unlock()

	go h.writeLoop(userID, cl)
}

func (h *Hub) Unregister(userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(userID, conn)
}

// remove drops the client and closes its queue, which ends the writer
// goroutine. Callers must hold h.mu exclusively. Idempotent.
func (h *Hub) remove(userID string, conn Conn) {
	conns, ok := h.clients[userID]
	if !ok {
		return
	}
	cl, ok := conns[conn]
	if !ok {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.clients, userID)
	}
	close(cl.send)
}

// Publish queues an event for every connection the user has open. Sends
// never block: a client whose queue is full is dropped instead of
// stalling the mutating request that published the event.
func (h *Hub) Publish(userID, eventType string, data any) {
	ev := Event{Type: eventType, Data: data}

	var stalled []Conn
	h.mu.RLock()
	for conn, cl := range h.clients[userID] {
		select {
		case cl.send <- ev:
		default:
			stalled = append(stalled, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range stalled {
		h.log.Warn().Str("event", eventType).Msg("dropping stalled websocket client")
		h.Unregister(userID, conn)
	}
}

func (h *Hub) writeLoop(userID string, cl *client) {
	defer cl.conn.Close()

	for ev := range cl.send {
		if err := cl.conn.WriteJSON(ev); err != nil {
			h.log.Warn().Err(err).Str("event", ev.Type).Msg("websocket write failed")
			h.Unregister(userID, cl.conn)
			// Drain until Unregister closes the queue.
			for range cl.send {
			}
			return
		}
	}
}
