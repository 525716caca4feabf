package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxMessageLength = 5000

type Message struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	ConversationID uuid.UUID  `json:"conversation_id" db:"conversation_id"`
	SenderID       int        `json:"sender_id" db:"sender_id"`
	Content        string     `json:"content" db:"content"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	ReadAt         *time.Time `json:"read_at" db:"read_at"`
}

// ValidateMessageContent trims and checks the 1-5000 character bound.
// Rejections happen before any storage call.
func ValidateMessageContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrMessageEmpty
	}
	if len([]rune(trimmed)) > MaxMessageLength {
		return "", ErrMessageTooLong
	}
	return trimmed, nil
}
