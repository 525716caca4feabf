package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/repository"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/scam"
)

// EventPublisher pushes realtime events to a topic. Consumers depend on
// this abstraction, not on the websocket transport.
type EventPublisher interface {
	Publish(topic string, payload interface{})
}

const unreadCacheTTL = 30 * time.Second

type ChatUseCase struct {
	convRepo    repository.ConversationRepository
	messageRepo repository.MessageRepository
	publisher   EventPublisher
	redisClient *redis.Client
}

func NewChatUseCase(
	convRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	publisher EventPublisher,
	redisClient *redis.Client,
) *ChatUseCase {
	return &ChatUseCase{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		publisher:   publisher,
		redisClient: redisClient,
	}
}

// MessageResponse is a message annotated with its advisory scam
// classification. The classification never blocks anything.
type MessageResponse struct {
	*domain.Message
	ScamWarning scam.Warning `json:"scam_warning"`
}

// MessageEvent is the realtime payload for inserts and read updates.
type MessageEvent struct {
	Kind    string           `json:"kind"` // "insert" or "update"
	Message *MessageResponse `json:"message,omitempty"`
}

// GetOrCreateConversation returns the single conversation for the
// unordered pair, creating it if absent. Both orderings resolve to the
// same row; a lost insert race is recovered by re-reading.
func (uc *ChatUseCase) GetOrCreateConversation(ctx context.Context, userA, userB int) (*domain.Conversation, error) {
	if userA == userB {
		return nil, domain.ErrCannotConnectSelf
	}

	conv, err := uc.convRepo.GetByUsers(ctx, userA, userB)
	if err == nil {
		// Found: no mutation, updated_at untouched.
		return conv, nil
	}
	if !errors.Is(err, domain.ErrConversationNotFound) {
		return nil, fmt.Errorf("failed to look up conversation: %w", err)
	}

	conv = &domain.Conversation{ParticipantOne: userA, ParticipantTwo: userB}
	err = uc.convRepo.Create(ctx, conv)
	if errors.Is(err, domain.ErrDuplicatePair) {
		// A concurrent call won the insert; the unique index on the
		// canonical pair guarantees the re-read finds it.
		return uc.convRepo.GetByUsers(ctx, userA, userB)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// Connect implements the swipe connector contract.
func (uc *ChatUseCase) Connect(ctx context.Context, userID, counterpartID int) (uuid.UUID, error) {
	conv, err := uc.GetOrCreateConversation(ctx, userID, counterpartID)
	if err != nil {
		return uuid.Nil, err
	}
	return conv.ID, nil
}

func (uc *ChatUseCase) GetConversations(ctx context.Context, userID int) ([]*domain.Conversation, error) {
	return uc.convRepo.GetUserConversations(ctx, userID)
}

// SendMessage validates content locally, stores the message, bumps the
// conversation, and publishes the insert on the conversation topic.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID int, conversationID uuid.UUID, content string) (*MessageResponse, error) {
	trimmed, err := domain.ValidateMessageContent(content)
	if err != nil {
		return nil, err
	}

	conv, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasUser(senderID) {
		return nil, domain.ErrNotParticipant
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        trimmed,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	if err := uc.convRepo.Touch(ctx, conversationID); err != nil {
		log.Printf("failed to bump conversation %s: %v", conversationID, err)
	}

	response := &MessageResponse{
		Message:     msg,
		ScamWarning: scam.Analyze(trimmed),
	}

	counterpart, _ := conv.GetOtherUserID(senderID)
	uc.invalidateUnread(ctx, counterpart)

	uc.publisher.Publish(conversationTopic(conversationID), MessageEvent{Kind: "insert", Message: response})
	uc.publisher.Publish(unreadTopic(counterpart), MessageEvent{Kind: "insert"})

	return response, nil
}

// GetMessages returns the conversation history with scam annotations.
func (uc *ChatUseCase) GetMessages(ctx context.Context, userID int, conversationID uuid.UUID, limit, offset int) ([]*MessageResponse, error) {
	conv, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasUser(userID) {
		return nil, domain.ErrNotParticipant
	}

	messages, err := uc.messageRepo.GetByConversation(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	responses := make([]*MessageResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, &MessageResponse{
			Message:     msg,
			ScamWarning: scam.Analyze(msg.Content),
		})
	}
	return responses, nil
}

// MarkRead stamps read_at on the counterpart's unread messages.
func (uc *ChatUseCase) MarkRead(ctx context.Context, readerID int, conversationID uuid.UUID) (int, error) {
	conv, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	if !conv.HasUser(readerID) {
		return 0, domain.ErrNotParticipant
	}

	updated, err := uc.messageRepo.MarkRead(ctx, conversationID, readerID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}

	if updated > 0 {
		uc.invalidateUnread(ctx, readerID)
		uc.publisher.Publish(conversationTopic(conversationID), MessageEvent{Kind: "update"})
	}
	return updated, nil
}

// UnreadCount returns the user's unread total, served from a short
// Redis cache when warm.
func (uc *ChatUseCase) UnreadCount(ctx context.Context, userID int) (int, error) {
	key := unreadCacheKey(userID)

	if uc.redisClient != nil {
		if cached, err := uc.redisClient.Get(ctx, key).Result(); err == nil {
			if count, convErr := strconv.Atoi(cached); convErr == nil {
				return count, nil
			}
		}
	}

	count, err := uc.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	if uc.redisClient != nil {
		if err := uc.redisClient.Set(ctx, key, count, unreadCacheTTL).Err(); err != nil {
			log.Printf("failed to cache unread count for user %d: %v", userID, err)
		}
	}
	return count, nil
}

func (uc *ChatUseCase) invalidateUnread(ctx context.Context, userID int) {
	if uc.redisClient == nil {
		return
	}
	if err := uc.redisClient.Del(ctx, unreadCacheKey(userID)).Err(); err != nil {
		log.Printf("failed to invalidate unread cache for user %d: %v", userID, err)
	}
}

func conversationTopic(id uuid.UUID) string {
	return "conversation:" + id.String()
}

func unreadTopic(userID int) string {
	return "user:" + strconv.Itoa(userID) + ":unread"
}

func unreadCacheKey(userID int) string {
	return "unread:" + strconv.Itoa(userID)
}
