package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
)

type memConvRepo struct {
	convs       map[uuid.UUID]*domain.Conversation
	failCreates int // return ErrDuplicatePair this many times
	created     int
}

func newMemConvRepo() *memConvRepo {
	return &memConvRepo{convs: make(map[uuid.UUID]*domain.Conversation)}
}

func (r *memConvRepo) Create(_ context.Context, conv *domain.Conversation) error {
	if r.failCreates > 0 {
		r.failCreates--
		return domain.ErrDuplicatePair
	}
	one, two := domain.CanonicalPair(conv.ParticipantOne, conv.ParticipantTwo)
	for _, existing := range r.convs {
		if existing.ParticipantOne == one && existing.ParticipantTwo == two {
			return domain.ErrDuplicatePair
		}
	}
	conv.ID = uuid.New()
	conv.ParticipantOne, conv.ParticipantTwo = one, two
	conv.CreatedAt = time.Now()
	conv.UpdatedAt = conv.CreatedAt
	r.convs[conv.ID] = conv
	r.created++
	return nil
}

func (r *memConvRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	if conv, ok := r.convs[id]; ok {
		return conv, nil
	}
	return nil, domain.ErrConversationNotFound
}

func (r *memConvRepo) GetByUsers(_ context.Context, userA, userB int) (*domain.Conversation, error) {
	one, two := domain.CanonicalPair(userA, userB)
	for _, conv := range r.convs {
		if conv.ParticipantOne == one && conv.ParticipantTwo == two {
			return conv, nil
		}
	}
	return nil, domain.ErrConversationNotFound
}

func (r *memConvRepo) GetUserConversations(_ context.Context, userID int) ([]*domain.Conversation, error) {
	var out []*domain.Conversation
	for _, conv := range r.convs {
		if conv.HasUser(userID) {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (r *memConvRepo) Touch(_ context.Context, id uuid.UUID) error {
	conv, ok := r.convs[id]
	if !ok {
		return domain.ErrConversationNotFound
	}
	conv.UpdatedAt = time.Now()
	return nil
}

type memMsgRepo struct {
	messages []*domain.Message
}

func (r *memMsgRepo) Create(_ context.Context, msg *domain.Message) error {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *memMsgRepo) GetByConversation(_ context.Context, conversationID uuid.UUID, _, _ int) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMsgRepo) MarkRead(_ context.Context, conversationID uuid.UUID, readerID int) (int, error) {
	now := time.Now()
	count := 0
	for _, m := range r.messages {
		if m.ConversationID == conversationID && m.SenderID != readerID && m.ReadAt == nil {
			m.ReadAt = &now
			count++
		}
	}
	return count, nil
}

func (r *memMsgRepo) CountUnread(_ context.Context, userID int) (int, error) {
	count := 0
	for _, m := range r.messages {
		if m.SenderID != userID && m.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

type memPublisher struct {
	topics []string
}

func (p *memPublisher) Publish(topic string, _ interface{}) {
	p.topics = append(p.topics, topic)
}

func newTestUseCase() (*ChatUseCase, *memConvRepo, *memMsgRepo, *memPublisher) {
	convRepo := newMemConvRepo()
	msgRepo := &memMsgRepo{}
	pub := &memPublisher{}
	return NewChatUseCase(convRepo, msgRepo, pub, nil), convRepo, msgRepo, pub
}

func TestGetOrCreateConversationIdempotent(t *testing.T) {
	uc, convRepo, _, _ := newTestUseCase()
	ctx := context.Background()

	first, err := uc.GetOrCreateConversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}

	// Same pair, both orderings, repeatedly.
	second, err := uc.GetOrCreateConversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	third, err := uc.GetOrCreateConversation(ctx, 2, 1)
	if err != nil {
		t.Fatalf("reversed call: %v", err)
	}

	if first.ID != second.ID || first.ID != third.ID {
		t.Errorf("ids differ: %s %s %s", first.ID, second.ID, third.ID)
	}
	if convRepo.created != 1 {
		t.Errorf("conversations created = %d, want 1", convRepo.created)
	}
}

func TestGetOrCreateConversationRecoversLostRace(t *testing.T) {
	uc, convRepo, _, _ := newTestUseCase()
	ctx := context.Background()

	// Seed the row as if a concurrent caller inserted between our
	// lookup miss and our insert.
	winner := &domain.Conversation{ParticipantOne: 5, ParticipantTwo: 9}
	if err := convRepo.Create(ctx, winner); err != nil {
		t.Fatalf("seed: %v", err)
	}
	convRepo.failCreates = 0 // unique index rejects via pair scan

	conv, err := uc.GetOrCreateConversation(ctx, 9, 5)
	if err != nil {
		t.Fatalf("GetOrCreateConversation: %v", err)
	}
	if conv.ID != winner.ID {
		t.Errorf("got id %s, want winner %s", conv.ID, winner.ID)
	}
}

func TestGetOrCreateConversationRejectsSelf(t *testing.T) {
	uc, _, _, _ := newTestUseCase()

	if _, err := uc.GetOrCreateConversation(context.Background(), 3, 3); !errors.Is(err, domain.ErrCannotConnectSelf) {
		t.Errorf("error = %v, want ErrCannotConnectSelf", err)
	}
}

func TestSendMessageLengthBoundary(t *testing.T) {
	uc, _, msgRepo, _ := newTestUseCase()
	ctx := context.Background()

	conv, err := uc.GetOrCreateConversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}

	// Exactly 5000 characters is accepted.
	if _, err := uc.SendMessage(ctx, 1, conv.ID, strings.Repeat("a", 5000)); err != nil {
		t.Errorf("5000 chars rejected: %v", err)
	}

	// 5001 is rejected before any storage call.
	before := len(msgRepo.messages)
	if _, err := uc.SendMessage(ctx, 1, conv.ID, strings.Repeat("a", 5001)); !errors.Is(err, domain.ErrMessageTooLong) {
		t.Errorf("5001 chars error = %v, want ErrMessageTooLong", err)
	}
	if len(msgRepo.messages) != before {
		t.Error("rejected message must not reach storage")
	}

	// Whitespace-only is empty after trim.
	if _, err := uc.SendMessage(ctx, 1, conv.ID, "   \n  "); !errors.Is(err, domain.ErrMessageEmpty) {
		t.Errorf("blank error = %v, want ErrMessageEmpty", err)
	}
}

func TestSendMessageRequiresParticipant(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx := context.Background()

	conv, err := uc.GetOrCreateConversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}

	if _, err := uc.SendMessage(ctx, 99, conv.ID, "hello"); !errors.Is(err, domain.ErrNotParticipant) {
		t.Errorf("error = %v, want ErrNotParticipant", err)
	}
}

func TestSendMessageAnnotatesButNeverBlocks(t *testing.T) {
	uc, _, _, pub := newTestUseCase()
	ctx := context.Background()

	conv, err := uc.GetOrCreateConversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}

	resp, err := uc.SendMessage(ctx, 1, conv.ID, "Please send payment via PayPal now, urgent!!")
	if err != nil {
		t.Fatalf("scammy message must still send: %v", err)
	}
	if !resp.ScamWarning.IsScammy {
		t.Error("expected scam annotation on response")
	}

	// Insert published on the conversation topic and the counterpart's
	// unread topic.
	wantConv := "conversation:" + conv.ID.String()
	foundConv, foundUnread := false, false
	for _, topic := range pub.topics {
		if topic == wantConv {
			foundConv = true
		}
		if topic == "user:2:unread" {
			foundUnread = true
		}
	}
	if !foundConv || !foundUnread {
		t.Errorf("published topics = %v, want conversation and unread topics", pub.topics)
	}
}

func TestMarkReadOnlyCounterpartMessages(t *testing.T) {
	uc, _, msgRepo, _ := newTestUseCase()
	ctx := context.Background()

	conv, err := uc.GetOrCreateConversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}

	if _, err := uc.SendMessage(ctx, 1, conv.ID, "from one"); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.SendMessage(ctx, 2, conv.ID, "from two"); err != nil {
		t.Fatal(err)
	}

	updated, err := uc.MarkRead(ctx, 1, conv.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1 (only the counterpart's message)", updated)
	}

	for _, m := range msgRepo.messages {
		if m.SenderID == 1 && m.ReadAt != nil {
			t.Error("reader's own message must not be marked read")
		}
		if m.SenderID == 2 && m.ReadAt == nil {
			t.Error("counterpart's message should be marked read")
		}
	}
}

func TestGetMessagesRequiresParticipant(t *testing.T) {
	uc, _, _, _ := newTestUseCase()
	ctx := context.Background()

	conv, err := uc.GetOrCreateConversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}

	if _, err := uc.GetMessages(ctx, 42, conv.ID, 50, 0); !errors.Is(err, domain.ErrNotParticipant) {
		t.Errorf("error = %v, want ErrNotParticipant", err)
	}
}
