package services

import (
	"context"
	"sync"
)

// Session is the per-login UI state: who is logged in, where the wizard is,
// which exams were rated in this session and which tips are shown.
type Session struct {
	ID     string
	UserID string

	mu    sync.Mutex
	nav   NavigationState
	rated map[string]bool
	tips  map[string]string
}

func newSession(id, userID string) *Session {
	return &Session{
		ID:     id,
		UserID: userID,
		nav:    InitialNavigationState(),
		rated:  map[string]bool{},
		tips:   map[string]string{},
	}
}

func (s *Session) Navigation() NavigationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav
}

// Navigate applies fn atomically; on error the state is left unchanged.
func (s *Session) Navigate(fn func(NavigationState) (NavigationState, error)) (NavigationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.nav)
	if err != nil {
		return s.nav, err
	}
	s.nav = next
	return s.nav, nil
}

// MarkRated reports false if examID was already rated in this session.
func (s *Session) MarkRated(examID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rated[examID] {
		return false
	}
	s.rated[examID] = true
	return true
}

func (s *Session) HasRated(examID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rated[examID]
}

func (s *Session) Tips(examID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tips[examID]
	return t, ok
}

// ToggleTips hides tips that are shown, otherwise fetches and shows them.
// The fetch runs unlocked; overlapping fetches for one exam are last-write-wins.
func (s *Session) ToggleTips(ctx context.Context, examID string, fetch func(context.Context) string) (string, bool) {
	s.mu.Lock()
	if _, ok := s.tips[examID]; ok {
		delete(s.tips, examID)
		s.mu.Unlock()
		return "", false
	}
	s.mu.Unlock()

	text := fetch(ctx)

	s.mu.Lock()
	s.tips[examID] = text
	s.mu.Unlock()
	return text, true
}

// SessionManager holds the live sessions. Logging out drops the session, which
// also discards its navigation state.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idGen    func() string
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: map[string]*Session{},
		idGen:    func() string { return "s" + shortID(15) },
	}
}

func (m *SessionManager) Open(userID string) *Session {
	s := newSession(m.idGen(), userID)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *SessionManager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Navigate(func(NavigationState) (NavigationState, error) { return InitialNavigationState(), nil })
	}
}
