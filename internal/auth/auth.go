package auth

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"sportsmeet-portal/internal/config"
	"sportsmeet-portal/internal/registration"
)

const CookieName = "sportsmeet_session"

var ErrInvalidCredentials = errors.New("Invalid username or password.")

// Session is an authenticated login. Team is 0 for admins.
type Session struct {
	ID        string    `json:"-"`
	Username  string    `json:"username"`
	Admin     bool      `json:"admin"`
	Team      int       `json:"team,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Principal is the capability triple the registration service checks.
func (s Session) Principal() registration.Principal {
	return registration.Principal{LoggedIn: s.ID != "", Admin: s.Admin, Team: s.Team}
}

// Manager checks credentials from configuration and keeps sessions in memory.
type Manager struct {
	managers []config.ManagerCredential
	admins   []config.Credential
	ttl      time.Duration
	clock    clockwork.Clock

	mu       sync.RWMutex
	sessions map[string]Session
}

func New(managers []config.ManagerCredential, admins []config.Credential, ttl time.Duration, clock clockwork.Clock) *Manager {
	return &Manager{
		managers: managers,
		admins:   admins,
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]Session),
	}
}

// Login tries admin credentials first, then team managers.
func (m *Manager) Login(username, password string) (Session, error) {
	s, ok := m.match(username, password)
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	s.ID = uuid.NewString()
	s.ExpiresAt = m.clock.Now().Add(m.ttl)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) match(username, password string) (Session, bool) {
	for _, c := range m.admins {
		if equal(c.Username, username) && equal(c.Password, password) {
			return Session{Username: c.Username, Admin: true}, true
		}
	}
	for _, c := range m.managers {
		if equal(c.Username, username) && equal(c.Password, password) {
			return Session{Username: c.Username, Team: c.Team}, true
		}
	}
	return Session{}, false
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Lookup returns the live session for id. Expired sessions are removed.
func (m *Manager) Lookup(id string) (Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return Session{}, false
	}

	if !m.clock.Now().Before(s.ExpiresAt) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return Session{}, false
	}
	return s, true
}

func (m *Manager) Logout(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
