// Package loghub streams operational log lines to websocket subscribers.
// It is an independent pub/sub channel: the timeline core never touches it.
package loghub

// Hub fans log lines out to every connected client. Slow clients get
// dropped rather than blocking the broadcast loop. The client map is owned
// by the run goroutine; all access goes through the channels.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
		case line := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- line:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast enqueues a line for delivery to all subscribers. Never blocks;
// when the buffer is full the line is dropped, log delivery is best effort.
func (h *Hub) Broadcast(line []byte) {
	select {
	case h.broadcast <- line:
	default:
	}
}

func (h *Hub) RegisterClient(c *Client)   { h.register <- c }
func (h *Hub) UnregisterClient(c *Client) { h.unregister <- c }

// Close shuts down the broadcast loop and disconnects all clients.
func (h *Hub) Close() { close(h.done) }
