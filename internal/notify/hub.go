package notify

import (
	"errors"
	"log"

	"github.com/gorilla/websocket"
)

// ErrQueueFull is returned by Publish when the broadcast queue is saturated.
var ErrQueueFull = errors.New("notify: broadcast queue full")

type client struct {
	conn *websocket.Conn
	send chan *Event // buffered to avoid dead-locks on slow clients
}

// Hub is a websocket fan-out hub. Every published event goes to every
// connected client. Clients that cannot keep up are disconnected rather than
// allowed to block the hub.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan *Event
	clients    map[*client]struct{}
}

// Ensure Hub implements Broadcaster
var _ Broadcaster = (*Hub)(nil)

// NewHub creates a hub. Call Run in its own goroutine before serving clients.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan *Event, 256),
		clients:    make(map[*client]struct{}),
	}
}

// Run owns the client set; all membership changes and broadcasts go through
// this loop.
func (h *Hub) Run() {
	for {
		select {
		case cl := <-h.register:
			h.clients[cl] = struct{}{}

		case cl := <-h.unregister:
			if _, ok := h.clients[cl]; ok {
				delete(h.clients, cl)
				close(cl.send)
			}

		case ev := <-h.broadcast:
			for cl := range h.clients {
				select {
				case cl.send <- ev:
				default:
					// Slow client: drop it instead of blocking everyone.
					delete(h.clients, cl)
					close(cl.send)
				}
			}
		}
	}
}

// Publish queues an event for broadcast. It never blocks.
func (h *Hub) Publish(event string, payload interface{}) error {
	select {
	case h.broadcast <- &Event{Event: event, Payload: payload}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Serve registers a websocket connection with the hub and pumps events to it
// until the connection drops.
func (h *Hub) Serve(conn *websocket.Conn) {
	cl := &client{
		conn: conn,
		send: make(chan *Event, 64),
	}
	h.register <- cl

	go cl.writePump()
	cl.readPump(h)
}

func (c *client) writePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for ev := range c.send {
		if err := c.conn.WriteJSON(ev); err != nil {
			log.Printf("ws write error: %v", err)
			break
		}
	}
}

// readPump discards inbound frames; the hub is push-only. Reading is still
// required so close and ping control frames are processed.
func (c *client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			break
		}
	}
}
