package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager is the registry of live sessions, keyed by session ID. One session
// per create call; a restart is a fresh session, not a reset of the old one.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	timers   map[string]*Timer

	provider ContentProvider
	sink     ResultSink
	notifier Notifier
	logger   zerolog.Logger
}

// NewManager creates a session manager wired to the given collaborators.
func NewManager(provider ContentProvider, sink ResultSink, logger zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		timers:   make(map[string]*Timer),
		provider: provider,
		sink:     sink,
		logger:   logger,
	}
}

// SetNotifier sets the notifier handed to every new session.
func (m *Manager) SetNotifier(n Notifier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifier = n
}

// Create registers a new session for the player and starts its countdown
// timer.
func (m *Manager) Create(player, gameID string) (*Session, error) {
	if player == "" {
		return nil, ErrNoPlayer
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	s := NewSession(id, gameID, player, m.provider, m.sink, m.logger)
	if m.notifier != nil {
		s.SetNotifier(m.notifier)
	}
	m.sessions[id] = s
	m.timers[id] = StartTimer(s, time.Second)
	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.sessions[id]
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove ends and evicts a session, stopping its timer.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s := m.sessions[id]
	t := m.timers[id]
	delete(m.sessions, id)
	delete(m.timers, id)
	m.mu.Unlock()

	if s != nil {
		s.End()
	}
	if t != nil {
		t.Stop()
	}
}
