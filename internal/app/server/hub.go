//go:generate mockgen -source=hub.go -destination=hub_mock.go -package=server
package server

import (
	"context"
	"sync"

	"lens/internal/app/paths"
)

// Hub manages event subscribers and fans frames out to them
type Hub interface {
	Register(sub *Subscriber)
	Unregister(sub *Subscriber)
	Broadcast(frame EventFrame)
	Run(ctx context.Context)
}

// Subscriber is one connected subscribe_events client
type Subscriber struct {
	ID       string
	Roots    map[string]bool // subscribed root keys (empty = all)
	SendChan chan EventFrame
}

// NewSubscriber creates a subscriber with the specified buffer size
func NewSubscriber(id string, bufferSize int) *Subscriber {
	return &Subscriber{
		ID:       id,
		Roots:    make(map[string]bool),
		SendChan: make(chan EventFrame, bufferSize),
	}
}

// SetFilter restricts the subscriber to events for the given roots
func (s *Subscriber) SetFilter(roots []string) {
	s.Roots = make(map[string]bool)
	for _, root := range roots {
		s.Roots[paths.Key(paths.Normalize(root))] = true
	}
}

// ShouldReceive reports whether a frame for root passes this subscriber's
// filter. Frames without a root are daemon-wide notices and always pass.
func (s *Subscriber) ShouldReceive(root string) bool {
	if len(s.Roots) == 0 || root == "" {
		return true
	}

	return s.Roots[paths.Key(root)]
}

// hub implements the Hub interface
type hub struct {
	clients    map[*Subscriber]bool
	register   chan *Subscriber
	unregister chan *Subscriber
	broadcast  chan EventFrame
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance with the specified buffer size
func NewHub(bufferSize int) Hub {
	return &hub{
		clients:    make(map[*Subscriber]bool),
		register:   make(chan *Subscriber),
		unregister: make(chan *Subscriber),
		broadcast:  make(chan EventFrame, bufferSize),
		done:       make(chan struct{}),
	}
}

// Register adds a subscriber to the hub
func (h *hub) Register(sub *Subscriber) {
	select {
	case h.register <- sub:
	case <-h.done:
	}
}

// Unregister removes a subscriber from the hub
func (h *hub) Unregister(sub *Subscriber) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

// Broadcast queues a frame for every matching subscriber. Frames are
// dropped when the hub's buffer is full; the stream is advisory.
func (h *hub) Broadcast(frame EventFrame) {
	select {
	case h.broadcast <- frame:
	default:
	}
}

// Run starts the hub's main loop
func (h *hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()

			for client := range h.clients {
				close(client.SendChan)
				delete(h.clients, client)
			}

			h.mu.Unlock()

			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()

			if _, ok := h.clients[client]; ok {
				close(client.SendChan)
				delete(h.clients, client)
			}

			h.mu.Unlock()
		case frame := <-h.broadcast:
			h.mu.RLock()

			for client := range h.clients {
				if client.ShouldReceive(frame.Root) {
					select {
					case client.SendChan <- frame:
					default:
					}
				}
			}

			h.mu.RUnlock()
		}
	}
}
