package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/repository"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query, msg.ID, msg.ConversationID, msg.SenderID, msg.Content).
		Scan(&msg.CreatedAt)
}

func (r *messageRepository) GetByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT * FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &messages, query, conversationID, limit, offset)
	return messages, err
}

func (r *messageRepository) MarkRead(ctx context.Context, conversationID uuid.UUID, readerID int) (int, error) {
	// Only the counterpart may mark messages read, never the sender.
	query := `
		UPDATE messages
		SET read_at = NOW()
		WHERE conversation_id = $1 AND sender_id != $2 AND read_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, conversationID, readerID)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	return int(rows), err
}

func (r *messageRepository) CountUnread(ctx context.Context, userID int) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE (c.participant_one = $1 OR c.participant_two = $1)
		  AND m.sender_id != $1
		  AND m.read_at IS NULL
	`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
