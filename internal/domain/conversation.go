package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is keyed by an unordered pair of participants. Rows are
// stored with participant_one < participant_two so the pair has exactly
// one representation, backed by a unique index.
type Conversation struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ParticipantOne int       `json:"participant_one" db:"participant_one"`
	ParticipantTwo int       `json:"participant_two" db:"participant_two"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

func (c *Conversation) HasUser(userID int) bool {
	return c.ParticipantOne == userID || c.ParticipantTwo == userID
}

func (c *Conversation) GetOtherUserID(userID int) (int, bool) {
	if c.ParticipantOne == userID {
		return c.ParticipantTwo, true
	}
	if c.ParticipantTwo == userID {
		return c.ParticipantOne, true
	}
	return 0, false
}

// CanonicalPair orders a participant pair for storage and lookup.
func CanonicalPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
