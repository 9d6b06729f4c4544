package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"market-service/internal/models"
)

var ErrRoomNotFound = errors.New("room not found")

// RoomRepository abstracts chat room persistence.
type RoomRepository interface {
	CreateOrGetRoom(ctx context.Context, productID int, buyerID int) (models.Room, error)
	GetRoom(ctx context.Context, roomID int) (models.Room, error)
	IsParticipant(ctx context.Context, roomID int, userID int) (bool, error)
	ListRoomsForUser(ctx context.Context, userID int) ([]models.RoomSummary, error)
	SetRoomHead(ctx context.Context, roomID int, messageID int) error
}

// RoomRepo is a sqlx implementation of RoomRepository.
type RoomRepo struct {
	db *sqlx.DB
}

// NewRoomRepo constructs a RoomRepo.
func NewRoomRepo(db *sqlx.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// CreateOrGetRoom returns the room between the buyer and the product's seller,
// creating it on first contact.
func (r *RoomRepo) CreateOrGetRoom(ctx context.Context, productID int, buyerID int) (models.Room, error) {
	var sellerID int
	err := r.db.GetContext(ctx, &sellerID, `SELECT seller_id FROM products WHERE id=$1`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Room{}, ErrProductNotFound
	}
	if err != nil {
		return models.Room{}, err
	}
	if sellerID == buyerID {
		return models.Room{}, errors.New("cannot open a room with yourself")
	}

	var room models.Room
	query := `SELECT id, product_id, buyer_id, seller_id, head_message_id, created_at FROM chat_rooms WHERE product_id=$1 AND buyer_id=$2`
	if err := r.db.GetContext(ctx, &room, query, productID, buyerID); err != nil {
		if err != sql.ErrNoRows {
			return models.Room{}, err
		}
		if err := r.db.QueryRowxContext(ctx, `INSERT INTO chat_rooms (product_id, buyer_id, seller_id) VALUES ($1, $2, $3)
            ON CONFLICT (product_id, buyer_id) DO UPDATE SET product_id = EXCLUDED.product_id
            RETURNING id, product_id, buyer_id, seller_id, head_message_id, created_at`, productID, buyerID, sellerID).
			StructScan(&room); err != nil {
			return models.Room{}, err
		}
	}
	return room, nil
}

// GetRoom fetches a room by id.
func (r *RoomRepo) GetRoom(ctx context.Context, roomID int) (models.Room, error) {
	var room models.Room
	err := r.db.GetContext(ctx, &room, `SELECT id, product_id, buyer_id, seller_id, head_message_id, created_at FROM chat_rooms WHERE id=$1`, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Room{}, ErrRoomNotFound
	}
	return room, err
}

// IsParticipant checks whether a user belongs to the room.
func (r *RoomRepo) IsParticipant(ctx context.Context, roomID int, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM chat_rooms WHERE id=$1 AND (buyer_id=$2 OR seller_id=$2))`, roomID, userID)
	return exists, err
}

// ListRoomsForUser returns the user's rooms with a preview of the latest
// message and the count of messages the user has not seen yet. The preview is
// computed from the messages table directly, so a stale head pointer never
// breaks the list.
func (r *RoomRepo) ListRoomsForUser(ctx context.Context, userID int) ([]models.RoomSummary, error) {
	query := `SELECT r.id, r.product_id, r.buyer_id, r.seller_id, r.created_at,
            COALESCE(m.body, '') AS preview_body,
            (SELECT COUNT(*) FROM chat_messages cm WHERE cm.room_id = r.id AND cm.unread AND cm.sender_id <> $1) AS unread_count
        FROM chat_rooms r
        LEFT JOIN LATERAL (
            SELECT body FROM chat_messages WHERE room_id = r.id ORDER BY created_at DESC, id DESC LIMIT 1
        ) m ON TRUE
        WHERE r.buyer_id=$1 OR r.seller_id=$1
        ORDER BY r.created_at DESC`
	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.RoomSummary
	for rows.Next() {
		var row struct {
			models.Room
			PreviewBody string `db:"preview_body"`
			UnreadCount int    `db:"unread_count"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		result = append(result, models.RoomSummary{
			RoomID:        row.ID,
			ProductID:     row.ProductID,
			CounterpartID: row.Counterpart(userID),
			PreviewBody:   row.PreviewBody,
			UnreadCount:   row.UnreadCount,
			CreatedAt:     row.CreatedAt,
		})
	}
	return result, rows.Err()
}

// SetRoomHead points the room at its most recent message. The update is
// idempotent; repeating it with the same message id is a no-op.
func (r *RoomRepo) SetRoomHead(ctx context.Context, roomID int, messageID int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE chat_rooms SET head_message_id=$2
        WHERE id=$1 AND EXISTS (SELECT 1 FROM chat_messages WHERE id=$2 AND room_id=$1)`, roomID, messageID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM chat_rooms WHERE id=$1)`, roomID); err != nil {
			return err
		}
		if !exists {
			return ErrRoomNotFound
		}
		return ErrMessageNotFound
	}
	return nil
}
