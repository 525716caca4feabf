package swipe

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/matching"
)

type State string

const (
	StateLoading    State = "loading"
	StateEmpty      State = "empty"      // caller has no skills in either list
	StateNoMatches  State = "no_matches" // queue empty after fetch
	StateReady      State = "ready"
	StateDragging   State = "dragging"
	StateCommitting State = "committing"
	StateExhausted  State = "exhausted"
)

type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

const (
	// DragThreshold is the horizontal distance past which DragEnd commits.
	DragThreshold = 100.0
	// VerticalDamping scales the vertical drag offset down to a hint.
	VerticalDamping = 0.3
	// SettleDelay lets the card animation settle before side effects run.
	SettleDelay = 300 * time.Millisecond
	// CelebrationTimeout autodismisses the perfect-match overlay.
	CelebrationTimeout = 3000 * time.Millisecond
)

var (
	ErrNotReady        = errors.New("session is not ready for swipes")
	ErrCommitInFlight  = errors.New("a commit is already in flight")
	ErrExhausted       = errors.New("no candidates left")
	ErrUndoUnavailable = errors.New("undo is not available")
	ErrNotExhausted    = errors.New("session is not exhausted")
)

type EventType string

const (
	EventCelebration   EventType = "celebration"
	EventConnected     EventType = "connected"
	EventConnectFailed EventType = "connect_failed"
	EventExhausted     EventType = "exhausted"
)

// Event is pushed to the session listener as swipe side effects resolve.
type Event struct {
	Type           EventType           `json:"type"`
	Candidate      *matching.Candidate `json:"candidate,omitempty"`
	ConversationID uuid.UUID           `json:"conversation_id,omitempty"`
	Reason         string              `json:"reason,omitempty"`
}

// Connector creates (or finds) the single conversation for a user pair.
type Connector interface {
	Connect(ctx context.Context, userID, counterpartID int) (uuid.UUID, error)
}

// Offset is a rendering hint for the card under drag.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Session drives one user's swipe loop over an immutable scored queue.
// The cursor only moves forward on commit and backward on undo; at most
// one commit is in flight at a time.
type Session struct {
	mu sync.Mutex

	userID int
	state  State
	queue  []*matching.Candidate
	cursor int

	// skipped holds left-swiped candidates in commit order.
	skipped []*matching.Candidate

	originX, originY float64
	offset           Offset

	committing       bool
	celebrating      bool
	celebrationTimer Timer
	pendingConnect   *Event

	clock     Clock
	connector Connector
	notify    func(Event)
}

func newSession(userID int, queue []*matching.Candidate, clock Clock, connector Connector, notify func(Event)) *Session {
	s := &Session{
		userID:    userID,
		state:     StateReady,
		queue:     queue,
		clock:     clock,
		connector: connector,
		notify:    notify,
	}
	if len(queue) == 0 {
		s.state = StateNoMatches
	}
	if s.notify == nil {
		s.notify = func(Event) {}
	}
	return s
}

// Snapshot is the session view handed to the presentation layer.
type Snapshot struct {
	State       State               `json:"state"`
	Cursor      int                 `json:"cursor"`
	QueueLength int                 `json:"queue_length"`
	Current     *matching.Candidate `json:"current,omitempty"`
	Offset      Offset              `json:"offset"`
	CanUndo     bool                `json:"can_undo"`
	Celebrating bool                `json:"celebrating"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:       s.state,
		Cursor:      s.cursor,
		QueueLength: len(s.queue),
		Offset:      s.offset,
		CanUndo:     s.canUndoLocked(),
		Celebrating: s.celebrating,
	}
	if s.cursor < len(s.queue) {
		snap.Current = s.queue[s.cursor]
	}
	return snap
}

// DragStart captures the gesture origin.
func (s *Session) DragStart(x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return ErrCommitInFlight
	}
	if s.state != StateReady {
		return ErrNotReady
	}

	s.originX, s.originY = x, y
	s.state = StateDragging
	return nil
}

// DragMove updates the rendering offset. Vertical movement is damped;
// queue state is untouched.
func (s *Session) DragMove(x, y float64) (Offset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateDragging {
		return Offset{}, ErrNotReady
	}

	s.offset = Offset{
		X: x - s.originX,
		Y: (y - s.originY) * VerticalDamping,
	}
	return s.offset, nil
}

// DragEnd commits a swipe when the horizontal offset exceeds the
// threshold, otherwise snaps back with no state change.
func (s *Session) DragEnd(ctx context.Context) error {
	s.mu.Lock()

	if s.state != StateDragging {
		s.mu.Unlock()
		return ErrNotReady
	}

	offsetX := s.offset.X
	if offsetX > -DragThreshold && offsetX < DragThreshold {
		s.offset = Offset{}
		s.state = StateReady
		s.mu.Unlock()
		return nil
	}

	direction := DirectionLeft
	if offsetX > 0 {
		direction = DirectionRight
	}
	s.state = StateReady
	s.mu.Unlock()

	return s.Commit(ctx, direction)
}

// Commit finalizes a swipe in the given direction. Right swipes trigger
// exactly one conversation-creation attempt after the settle delay; the
// cursor advances whether or not that attempt succeeds.
func (s *Session) Commit(ctx context.Context, direction Direction) error {
	s.mu.Lock()

	if s.committing {
		s.mu.Unlock()
		return ErrCommitInFlight
	}
	if s.state != StateReady && s.state != StateDragging {
		s.mu.Unlock()
		return ErrNotReady
	}
	if s.cursor >= len(s.queue) {
		s.mu.Unlock()
		return ErrExhausted
	}

	candidate := s.queue[s.cursor]
	s.committing = true
	s.state = StateCommitting
	s.mu.Unlock()

	// The settle callback fires after the request that scheduled it has
	// returned, so the connect attempt must not inherit its cancellation.
	detached := context.WithoutCancel(ctx)
	s.clock.AfterFunc(SettleDelay, func() {
		s.settle(detached, direction, candidate)
	})
	return nil
}

func (s *Session) settle(ctx context.Context, direction Direction, candidate *matching.Candidate) {
	if direction == DirectionLeft {
		s.mu.Lock()
		s.skipped = append(s.skipped, candidate)
		exhausted := s.advanceLocked()
		s.mu.Unlock()
		if exhausted {
			s.notify(Event{Type: EventExhausted})
		}
		return
	}

	conversationID, err := s.connector.Connect(ctx, s.userID, candidate.Profile.UserID)

	s.mu.Lock()
	if err != nil {
		// Fail forward: the swipe is not retried and the queue advances.
		exhausted := s.advanceLocked()
		s.mu.Unlock()
		s.notify(Event{
			Type:      EventConnectFailed,
			Candidate: candidate,
			Reason:    err.Error(),
		})
		if exhausted {
			s.notify(Event{Type: EventExhausted})
		}
		return
	}

	connected := Event{
		Type:           EventConnected,
		Candidate:      candidate,
		ConversationID: conversationID,
	}

	if candidate.IsPerfect() {
		// Hold the success notice until the overlay is dismissed, by
		// timeout or by tap.
		s.celebrating = true
		s.pendingConnect = &connected
		s.celebrationTimer = s.clock.AfterFunc(CelebrationTimeout, s.DismissCelebration)
		exhausted := s.advanceLocked()
		s.mu.Unlock()
		s.notify(Event{Type: EventCelebration, Candidate: candidate, ConversationID: conversationID})
		if exhausted {
			s.notify(Event{Type: EventExhausted})
		}
		return
	}

	exhausted := s.advanceLocked()
	s.mu.Unlock()
	s.notify(connected)
	if exhausted {
		s.notify(Event{Type: EventExhausted})
	}
}

// DismissCelebration ends the perfect-match overlay, by user tap or by
// the autodismiss timer, and releases the held success notice.
func (s *Session) DismissCelebration() {
	s.mu.Lock()
	if !s.celebrating {
		s.mu.Unlock()
		return
	}
	s.celebrating = false
	if s.celebrationTimer != nil {
		s.celebrationTimer.Stop()
		s.celebrationTimer = nil
	}
	pending := s.pendingConnect
	s.pendingConnect = nil
	s.mu.Unlock()

	if pending != nil {
		s.notify(*pending)
	}
}

// advanceLocked moves the cursor past the committed candidate and
// returns the session to a stable state. Caller holds the mutex and
// announces exhaustion after unlocking when true is returned.
func (s *Session) advanceLocked() bool {
	s.cursor++
	s.offset = Offset{}
	s.committing = false
	if s.cursor >= len(s.queue) {
		s.state = StateExhausted
		return true
	}
	s.state = StateReady
	return false
}

// Undo restores the most recently skipped candidate. It never restores
// a right swipe: the stack top must be the candidate just before the
// cursor, which only a left swipe leaves there.
func (s *Session) Undo() (*matching.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing {
		return nil, ErrCommitInFlight
	}
	if !s.canUndoLocked() {
		return nil, ErrUndoUnavailable
	}

	s.skipped = s.skipped[:len(s.skipped)-1]
	s.cursor--
	s.state = StateReady
	return s.queue[s.cursor], nil
}

func (s *Session) canUndoLocked() bool {
	if s.committing || len(s.skipped) == 0 || s.cursor == 0 {
		return false
	}
	return s.skipped[len(s.skipped)-1] == s.queue[s.cursor-1]
}

// Restart re-presents the same queue from the top after exhaustion.
// No refetch, no rescoring.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateExhausted {
		return ErrNotExhausted
	}

	s.cursor = 0
	s.skipped = nil
	s.offset = Offset{}
	s.state = StateReady
	return nil
}
