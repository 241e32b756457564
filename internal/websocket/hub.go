package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/stemsi/roster/internal/model"
)

// Hub fans roster snapshots out to every connected table view.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	log     zerolog.Logger
}

// Client is one connected view. Frames are queued and written by the
// client's own writer goroutine so a slow view never blocks the roster.
type Client struct {
	conn *websocket.Conn
	send chan interface{}
	once sync.Once
}

const clientQueue = 16

// NewHub creates an empty Hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     log.With().Str("component", "ws_hub").Logger(),
	}
}

// Register adds conn to the hub and starts its writer.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	c := &Client{conn: conn, send: make(chan interface{}, clientQueue)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.log.Debug().Int("clients", n).Msg("view connected")
	go c.writeLoop()
	return c
}

// Unregister removes c and closes its queue.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		c.close()
		h.log.Debug().Int("clients", n).Msg("view disconnected")
	}
}

// Count returns the number of connected views.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues a table frame for every view. Views whose queue is full
// are dropped; they reconnect and receive a fresh snapshot.
func (h *Hub) Broadcast(students []model.Student) {
	frame := TableResponse{Event: EventTable, Students: students}

	h.mu.Lock()
	var slow []*Client
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		delete(h.clients, c)
	}
	h.mu.Unlock()

	for _, c := range slow {
		c.close()
		h.log.Warn().Msg("dropping slow view")
	}
}

// Send queues a frame for this client only. It reports false if the queue is
// full or closed.
func (c *Client) Send(v interface{}) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case c.send <- v:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.once.Do(func() { close(c.send) })
}

func (c *Client) writeLoop() {
	defer c.conn.Close()
	for v := range c.send {
		if err := WriteTyped(c.conn, v); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
