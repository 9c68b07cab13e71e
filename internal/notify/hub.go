package notify

import (
	"sync"

	"github.com/gorilla/websocket"

	"deipna/internal/domain"
)

const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
)

// Event is what goes down the wire to a connected restaurant owner.
type Event struct {
	Type        string              `json:"type"`
	Reservation *domain.Reservation `json:"reservation"`
}

// Hub keeps one websocket connection per user. Delivery is best effort:
// a failed write drops the connection and the event is lost.
type Hub struct {
	connections map[string]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*websocket.Conn),
	}
}

func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[userID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[userID] = conn
}

// Unregister drops the user's connection, but only if it is still the one
// the caller holds. A reader goroutine of a displaced connection must not
// evict its replacement.
func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	current, exists := h.connections[userID]
	if !exists {
		return
	}
	if conn != nil && current != conn {
		return
	}
	if current != nil {
		_ = current.Close()
	}
	delete(h.connections, userID)
}

func (h *Hub) SendToUser(userID string, message any) bool {
	h.mutex.RLock()
	conn, exists := h.connections[userID]
	h.mutex.RUnlock()

	if !exists || conn == nil {
		return false
	}

	if err := conn.WriteJSON(message); err != nil {
		h.Unregister(userID, conn)
		return false
	}

	return true
}

func (h *Hub) IsOnline(userID string) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[userID]
	return exists
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}

func (h *Hub) NotifyReservationCreated(ownerID string, res *domain.Reservation) {
	_ = h.SendToUser(ownerID, Event{Type: EventReservationCreated, Reservation: res})
}

func (h *Hub) NotifyReservationStatusChanged(ownerID string, res *domain.Reservation) {
	_ = h.SendToUser(ownerID, Event{Type: EventReservationStatusChanged, Reservation: res})
}
