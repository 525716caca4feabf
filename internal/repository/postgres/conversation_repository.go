package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/repository"
)

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	// Store the pair in canonical order for the unique index.
	one, two := domain.CanonicalPair(conv.ParticipantOne, conv.ParticipantTwo)

	query := `
		INSERT INTO conversations (id, participant_one, participant_two)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	err := r.db.QueryRowContext(ctx, query, conv.ID, one, two).
		Scan(&conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicatePair
		}
		return err
	}

	conv.ParticipantOne = one
	conv.ParticipantTwo = two
	return nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	var conv domain.Conversation
	query := `SELECT * FROM conversations WHERE id = $1`
	err := r.db.GetContext(ctx, &conv, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) GetByUsers(ctx context.Context, userA, userB int) (*domain.Conversation, error) {
	one, two := domain.CanonicalPair(userA, userB)

	var conv domain.Conversation
	query := `SELECT * FROM conversations WHERE participant_one = $1 AND participant_two = $2`
	err := r.db.GetContext(ctx, &conv, query, one, two)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) GetUserConversations(ctx context.Context, userID int) ([]*domain.Conversation, error) {
	var convs []*domain.Conversation
	query := `
		SELECT * FROM conversations
		WHERE participant_one = $1 OR participant_two = $1
		ORDER BY updated_at DESC
	`
	err := r.db.SelectContext(ctx, &convs, query, userID)
	return convs, err
}

func (r *conversationRepository) Touch(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE conversations SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}
