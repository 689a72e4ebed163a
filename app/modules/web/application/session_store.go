package webservice

import (
	"sync"

	webdomain "github.com/Black-And-White-Club/retro-arcade/app/modules/web/domain"
)

type sessionKey struct {
	sessionID string
	gameID    int
}

// SessionStore keeps play sessions in memory, one per browser session and game.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[sessionKey]webdomain.PlaySession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[sessionKey]webdomain.PlaySession)}
}

// Get returns the session, idle when none exists.
func (s *SessionStore) Get(sessionID string, gameID int) webdomain.PlaySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionKey{sessionID, gameID}].Current()
}

// Update applies fn to the stored session under the write lock. The session is
// stored only when fn succeeds.
func (s *SessionStore) Update(
	sessionID string,
	gameID int,
	fn func(webdomain.PlaySession) (webdomain.PlaySession, error),
) (webdomain.PlaySession, error) {
	key := sessionKey{sessionID, gameID}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.sessions[key].Current())
	if err != nil {
		return next, err
	}
	s.sessions[key] = next
	return next, nil
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
