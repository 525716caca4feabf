package swipe

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/skillbridge-sg/skillbridge-backend/internal/repository"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/matching"
)

var ErrNoActiveSession = errors.New("no active swipe session")

const candidateFetchLimit = 100

// Manager owns one swipe session per user. Starting a session replaces
// any previous one, which is how a skill-list change triggers a reload.
type Manager struct {
	mu       sync.Mutex
	sessions map[int]*Session

	profileRepo repository.ProfileRepository
	connector   Connector
	clock       Clock
}

func NewManager(profileRepo repository.ProfileRepository, connector Connector, clock Clock) *Manager {
	return &Manager{
		sessions:    make(map[int]*Session),
		profileRepo: profileRepo,
		connector:   connector,
		clock:       clock,
	}
}

// StartSession fetches and scores the candidate queue for the user and
// installs a fresh session.
func (m *Manager) StartSession(ctx context.Context, userID int, notify func(Event)) (*Session, error) {
	profile, err := m.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller profile: %w", err)
	}

	if !profile.HasSkills() {
		session := newSession(userID, nil, m.clock, m.connector, notify)
		session.state = StateEmpty
		m.install(userID, session)
		return session, nil
	}

	candidates, err := m.profileRepo.GetPublicProfiles(ctx, userID, candidateFetchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	queue := matching.BuildQueue(profile.SkillsOffered, profile.SkillsWanted, candidates)
	session := newSession(userID, queue, m.clock, m.connector, notify)
	m.install(userID, session)
	return session, nil
}

func (m *Manager) install(userID int, session *Session) {
	m.mu.Lock()
	m.sessions[userID] = session
	m.mu.Unlock()
}

// Get returns the user's active session.
func (m *Manager) Get(userID int) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[userID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// End discards the user's session.
func (m *Manager) End(userID int) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}
