package models

import "time"

// Room is the conversation between a buyer and the seller of one product.
// A buyer gets at most one room per product.
type Room struct {
	ID            int       `db:"id" json:"id"`
	ProductID     int       `db:"product_id" json:"product_id"`
	BuyerID       int       `db:"buyer_id" json:"buyer_id"`
	SellerID      int       `db:"seller_id" json:"seller_id"`
	HeadMessageID *int      `db:"head_message_id" json:"head_message_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// RoomSummary provides API-friendly view of a room for a user.
type RoomSummary struct {
	RoomID        int       `json:"room_id"`
	ProductID     int       `json:"product_id"`
	CounterpartID int       `json:"counterpart_id"`
	PreviewBody   string    `json:"preview_body,omitempty"`
	UnreadCount   int       `json:"unread_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsParticipant reports whether the user is one of the room's two parties.
func (r Room) IsParticipant(userID int) bool {
	return r.BuyerID == userID || r.SellerID == userID
}

// Counterpart returns the other party of the room.
func (r Room) Counterpart(userID int) int {
	if r.BuyerID == userID {
		return r.SellerID
	}
	return r.BuyerID
}
