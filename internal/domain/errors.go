package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidInput         = errors.New("invalid input")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("user is not a conversation participant")
	ErrMessageTooLong       = errors.New("message content exceeds 5000 characters")
	ErrMessageEmpty         = errors.New("message content is empty")
	ErrReportNotFound       = errors.New("report not found")
	ErrReportTooLong        = errors.New("report description exceeds 200 words")
	ErrCannotReportSelf     = errors.New("cannot report yourself")
	ErrCannotConnectSelf    = errors.New("cannot connect with yourself")
	ErrDuplicatePair        = errors.New("conversation already exists for pair")
)
