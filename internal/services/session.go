package services

import "sync"

// Session is the explicit login state handed to everything that acts on
// behalf of a user. It is either none or active for exactly one username.
// Only AuthService changes it.
type Session struct {
	mu       sync.RWMutex
	username string
}

// NewSession returns a logged-out session.
func NewSession() *Session {
	return &Session{}
}

// Username returns the active username, or ok=false when logged out.
func (s *Session) Username() (username string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username, s.username != ""
}

func (s *Session) begin(username string) {
	s.mu.Lock()
	s.username = username
	s.mu.Unlock()
}

func (s *Session) end() {
	s.begin("")
}
