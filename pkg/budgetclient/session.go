package budgetclient

import "sync"

// Session holds the bearer token for one signed-in user. It is passed
// explicitly to every Client call so one Client can serve many users.
type Session struct {
	mu    sync.RWMutex
	token string
}

func NewSession(token string) *Session {
	return &Session{token: token}
}

// Set stores the token returned by a successful login.
func (s *Session) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear forgets the token, on logout or after the API rejects it.
func (s *Session) Clear() {
	s.Set("")
}

func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
