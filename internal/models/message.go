package models

import "time"

// Message represents a chat message inside a room. Unread starts true and is
// cleared once the counterpart views the room; it is never set back.
type Message struct {
	ID        int       `db:"id" json:"id"`
	RoomID    int       `db:"room_id" json:"room_id"`
	SenderID  int       `db:"sender_id" json:"sender_id"`
	Body      string    `db:"body" json:"body"`
	Unread    bool      `db:"unread" json:"unread"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SenderRef identifies the message author in push payloads.
type SenderRef struct {
	ID int `json:"id"`
}

// MessagePayload is the wire shape pushed to room subscribers.
type MessagePayload struct {
	ID        int       `json:"id"`
	Body      string    `json:"body"`
	Sender    SenderRef `json:"sender"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoomEvent is broadcasted through websockets.
type RoomEvent struct {
	Type    string          `json:"type"`
	Message *MessagePayload `json:"message,omitempty"`
}

// Payload converts a stored message into its push shape.
func (m Message) Payload() MessagePayload {
	return MessagePayload{
		ID:        m.ID,
		Body:      m.Body,
		Sender:    SenderRef{ID: m.SenderID},
		CreatedAt: m.CreatedAt,
	}
}
