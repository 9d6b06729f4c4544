package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"market-service/internal/models"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotParticipant  = errors.New("sender is not a room participant")
)

// MessageRepository defines interactions for chat messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, roomID int, senderID int, body string) (models.Message, error)
	ListMessages(ctx context.Context, roomID int) ([]models.Message, error)
	GetMessage(ctx context.Context, messageID int) (models.Message, error)
	MarkRead(ctx context.Context, roomID int, readerID int) error
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage stores a message in a room. The room row is locked for the
// duration of the insert so that same-room messages get strictly ordered
// timestamps; writes to different rooms do not contend.
func (r *MessageRepo) CreateMessage(ctx context.Context, roomID int, senderID int, body string) (models.Message, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Message{}, err
	}
	defer tx.Rollback()

	var room models.Room
	err = tx.GetContext(ctx, &room, `SELECT id, product_id, buyer_id, seller_id, head_message_id, created_at FROM chat_rooms WHERE id=$1 FOR UPDATE`, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrRoomNotFound
	}
	if err != nil {
		return models.Message{}, err
	}
	if !room.IsParticipant(senderID) {
		return models.Message{}, ErrNotParticipant
	}

	var msg models.Message
	if err := tx.QueryRowxContext(ctx, `INSERT INTO chat_messages (room_id, sender_id, body, unread, created_at)
        VALUES ($1, $2, $3, TRUE, clock_timestamp())
        RETURNING id, room_id, sender_id, body, unread, created_at`, roomID, senderID, body).
		StructScan(&msg); err != nil {
		return models.Message{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// ListMessages returns room messages in creation order.
func (r *MessageRepo) ListMessages(ctx context.Context, roomID int) ([]models.Message, error) {
	query := `SELECT id, room_id, sender_id, body, unread, created_at
        FROM chat_messages
        WHERE room_id=$1
        ORDER BY created_at ASC, id ASC`
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs, query, roomID)
	return msgs, err
}

// GetMessage retrieves a single message.
func (r *MessageRepo) GetMessage(ctx context.Context, messageID int) (models.Message, error) {
	var msg models.Message
	err := r.db.GetContext(ctx, &msg, `SELECT id, room_id, sender_id, body, unread, created_at FROM chat_messages WHERE id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	return msg, err
}

// MarkRead clears the unread flag on every room message not authored by the
// reader. Messages already read stay read; calling it with nothing to clear
// is a no-op.
func (r *MessageRepo) MarkRead(ctx context.Context, roomID int, readerID int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE chat_messages SET unread = FALSE
        WHERE room_id=$1 AND sender_id<>$2 AND unread = TRUE`, roomID, readerID)
	return err
}
