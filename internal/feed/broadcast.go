// Package feed exposes the client's session state on a local socket so
// overlays (stream deck pages, OBS widgets) can follow transitions without
// reaching into the controller. One websocket endpoint streams transitions,
// one JSON endpoint answers with the current snapshot.
package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/RE4CT-SC/388-Client/internal/diag"
	"github.com/RE4CT-SC/388-Client/internal/hotkey"
	"github.com/RE4CT-SC/388-Client/internal/session"
	"github.com/gorilla/websocket"
)

// Message is one feed payload. Type is "snapshot" on connect and "event"
// for transitions.
type Message struct {
	Type    string    `json:"type"`
	State   string    `json:"state"`
	Keybind string    `json:"keybind"`
	Event   string    `json:"event,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

// StatusPayload answers the /status endpoint.
type StatusPayload struct {
	State   string        `json:"state"`
	Keybind string        `json:"keybind"`
	Diag    diag.Snapshot `json:"diag"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		send: make(chan []byte, 16),
	}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *client) close() {
	close(c.send)
}

// Broadcaster fans session transitions out to connected feed clients.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[*client]bool
	ctrl    *session.Controller
	binding hotkey.Token
	events  <-chan session.Event
}

func NewBroadcaster(ctrl *session.Controller, binding hotkey.Token) *Broadcaster {
	return &Broadcaster{
		clients: make(map[*client]bool),
		ctrl:    ctrl,
		binding: binding,
		events:  ctrl.Subscribe(),
	}
}

// Run relays controller transitions to clients until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.closeAll()
			return
		case ev := <-b.events:
			b.broadcast(Message{
				Type:    "event",
				State:   ev.State.String(),
				Keybind: b.binding.Display(),
				Event:   ev.Type.String(),
				Reason:  ev.Reason,
				At:      ev.At,
			})
		}
	}
}

// AddClient registers a connection and sends it the current snapshot.
func (b *Broadcaster) AddClient(conn *websocket.Conn) *client {
	c := newClient(conn)

	b.mu.Lock()
	b.clients[c] = true
	b.mu.Unlock()

	data, _ := json.Marshal(b.snapshot())
	select {
	case c.send <- data:
	default:
	}
	return c
}

func (b *Broadcaster) RemoveClient(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		c.close()
	}
	b.mu.Unlock()
}

func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broadcaster) snapshot() Message {
	return Message{
		Type:    "snapshot",
		State:   b.ctrl.State().String(),
		Keybind: b.binding.Display(),
		At:      time.Now(),
	}
}

func (b *Broadcaster) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("feed marshal error: %v", err)
		return
	}

	b.mu.RLock()
	clients := make([]*client, 0, len(b.clients))
	for c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			// Client can't keep up, disconnect it.
			log.Printf("feed client too slow, disconnecting")
			b.RemoveClient(c)
		}
	}
}

func (b *Broadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		c.close()
		delete(b.clients, c)
	}
}
