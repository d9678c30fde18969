package websocket

import (
	"log"
	"sync"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Availability is pushed to every calendar subscriber when a session's free
// seats change.
type Availability struct {
	SessionID string `json:"session_id"`
	SpotsLeft int    `json:"spots_left"`
	Capacity  int    `json:"capacity"`
	Deleted   bool   `json:"deleted,omitempty"`
}

type Hub struct {
	clients    map[Conn]struct{}
	clientsMu  sync.RWMutex
	Register   chan Conn
	Unregister chan Conn
	Broadcast  chan Availability
	quit       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Conn]struct{}),
		Register:   make(chan Conn),
		Unregister: make(chan Conn),
		Broadcast:  make(chan Availability, 64),
		quit:       make(chan struct{}),
	}
}

// Calendar is the hub the HTTP layer uses. main starts it with RunHub.
var Calendar = NewHub()

func RunHub() {
	Calendar.Run()
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.clientsMu.Lock()
			h.clients[conn] = struct{}{}
			h.clientsMu.Unlock()
		case conn := <-h.Unregister:
			h.remove(conn)
		case update := <-h.Broadcast:
			h.send(update)
		case <-h.quit:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

func (h *Hub) remove(conn Conn) {
	h.clientsMu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.clientsMu.Unlock()
}

func (h *Hub) send(update Availability) {
	h.clientsMu.RLock()
	var failed []Conn
	for conn := range h.clients {
		if err := conn.WriteJSON(update); err != nil {
			log.Printf("Error sending availability to calendar client: %v", err)
			failed = append(failed, conn)
		}
	}
	h.clientsMu.RUnlock()

	for _, conn := range failed {
		h.remove(conn)
	}
}

func (h *Hub) Count() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// NotifyAvailability queues an update without blocking the request that
// caused it. Updates are dropped when the hub is saturated.
func (h *Hub) NotifyAvailability(update Availability) {
	select {
	case h.Broadcast <- update:
	default:
		log.Printf("Calendar hub busy, dropping update for session %s", update.SessionID)
	}
}

func NotifyAvailability(update Availability) {
	Calendar.NotifyAvailability(update)
}
