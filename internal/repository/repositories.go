package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	UpdateRole(ctx context.Context, id int, role domain.Role) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	UpdateCredibility(ctx context.Context, userID int, score int) error
	// GetPublicProfiles returns profiles with at least one skill in either
	// list, excluding the given user.
	GetPublicProfiles(ctx context.Context, excludeUserID int, limit, offset int) ([]*domain.Profile, error)
}

type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	// GetByUsers looks the pair up in canonical order, so both (A,B) and
	// (B,A) resolve to the same row.
	GetByUsers(ctx context.Context, userA, userB int) (*domain.Conversation, error)
	GetUserConversations(ctx context.Context, userID int) ([]*domain.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]*domain.Message, error)
	// MarkRead sets read_at on unread messages in the conversation that
	// were not sent by readerID. Returns the number of rows updated.
	MarkRead(ctx context.Context, conversationID uuid.UUID, readerID int) (int, error)
	CountUnread(ctx context.Context, userID int) (int, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	List(ctx context.Context, status *domain.ReportStatus, limit, offset int) ([]*domain.Report, error)
	Update(ctx context.Context, report *domain.Report) error
}
