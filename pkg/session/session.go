// Package session provides the shell's view of the current user. The real
// identity provider lives behind the backend API; locally we only care about
// "guest" versus "signed in" plus the bearer token for API calls.
package session

import "sync"

type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// Authority answers who the current user is. A false second return means the
// visitor is a guest.
type Authority interface {
	Current() (Session, bool)
}

// Memory is the process-local session holder. It starts as guest and is
// promoted when a login/signup form completes or a configured token resolves
// to a profile.
type Memory struct {
	mu   sync.RWMutex
	sess *Session
}

var _ Authority = &Memory{}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.sess == nil {
		return Session{}, false
	}
	return *m.sess, true
}

func (m *Memory) Set(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = &s
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
}

// Token returns the bearer token for API calls, empty for guests.
func (m *Memory) Token() string {
	s, ok := m.Current()
	if !ok {
		return ""
	}
	return s.Token
}
