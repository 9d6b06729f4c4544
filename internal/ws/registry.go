package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Subscription pairs a room with one live connection. Two browser tabs of the
// same user hold two distinct subscriptions.
type Subscription struct {
	roomID  int
	conn    *websocket.Conn
	writeMu sync.Mutex
	Info    ConnInfo
}

// RoomID returns the room the subscription belongs to.
func (s *Subscription) RoomID() int {
	return s.roomID
}

// Conn returns the underlying websocket connection.
func (s *Subscription) Conn() *websocket.Conn {
	return s.conn
}

// Send writes one text frame to the connection. Writes are serialized per
// subscription; gorilla connections do not allow concurrent writers.
func (s *Subscription) Send(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Registry maps room ids to their live subscriber connections. State is
// memory-resident only; clients resubscribe after a restart.
type Registry struct {
	mu    sync.RWMutex
	rooms map[int]map[*websocket.Conn]*Subscription
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[int]map[*websocket.Conn]*Subscription),
	}
}

// Subscribe registers a connection as a subscriber of the room.
func (r *Registry) Subscribe(roomID int, conn *websocket.Conn, info ConnInfo) *Subscription {
	sub := &Subscription{roomID: roomID, conn: conn, Info: info}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[roomID]; !ok {
		r.rooms[roomID] = make(map[*websocket.Conn]*Subscription)
	}
	r.rooms[roomID][conn] = sub
	return sub
}

// Unsubscribe removes the subscription. Safe to call more than once; removing
// an already-removed subscription is a no-op.
func (r *Registry) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if conns, ok := r.rooms[sub.roomID]; ok {
		delete(conns, sub.conn)
		if len(conns) == 0 {
			delete(r.rooms, sub.roomID)
		}
	}
}

// SubscribersOf returns a snapshot of the room's current subscribers. A
// connection removed concurrently is either in the snapshot or not; callers
// never see a half-removed entry.
func (r *Registry) SubscribersOf(roomID int) []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := r.rooms[roomID]
	if len(conns) == 0 {
		return nil
	}
	subs := make([]*Subscription, 0, len(conns))
	for _, sub := range conns {
		subs = append(subs, sub)
	}
	return subs
}

// SubscriberCount reports the number of live subscriptions for a room.
func (r *Registry) SubscriberCount(roomID int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[roomID])
}
