package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/deemkeen/bloglist/domain"
	"github.com/deemkeen/bloglist/storage"
)

// StorageKey is the record the logged in user is kept under
const StorageKey = "loggedBlogUser"

// ErrAuth is returned when a login is rejected or cannot be completed
var ErrAuth = errors.New("authentication failed")

// Authenticator is the part of the API client the session needs
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (domain.Session, error)
	SetCredential(token string)
}

// Manager owns the authenticated user and keeps the API credential and the
// stored record in step with it.
type Manager struct {
	api   Authenticator
	store storage.Store

	mu      sync.RWMutex
	current *domain.Session
}

func NewManager(api Authenticator, store storage.Store) *Manager {
	return &Manager{api: api, store: store}
}

// Login exchanges the credentials for a session, persists it and hands the
// token to the API client. Nothing is persisted when the exchange fails.
func (m *Manager) Login(ctx context.Context, username, password string) (domain.Session, error) {
	s, err := m.api.Authenticate(ctx, username, password)
	if err != nil {
		return domain.Session{}, errors.Join(ErrAuth, err)
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return domain.Session{}, errors.Join(ErrAuth, fmt.Errorf("encode session: %w", err))
	}
	if err := m.store.Set(StorageKey, string(payload)); err != nil {
		return domain.Session{}, errors.Join(ErrAuth, fmt.Errorf("persist session: %w", err))
	}

	m.api.SetCredential(s.Token)
	m.set(&s)

	log.Printf("Session: %s logged in", s.Username)
	return s, nil
}

// Restore loads the stored session, if any. A missing, unreadable or
// malformed record counts as no session.
func (m *Manager) Restore(ctx context.Context) (domain.Session, bool) {
	raw, ok, err := m.store.Get(StorageKey)
	if err != nil {
		log.Printf("Session: could not read stored session: %v", err)
		return domain.Session{}, false
	}
	if !ok {
		return domain.Session{}, false
	}

	var s domain.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		log.Printf("Session: ignoring malformed stored session: %v", err)
		return domain.Session{}, false
	}
	if s.Token == "" {
		log.Printf("Session: ignoring stored session without token")
		return domain.Session{}, false
	}

	m.api.SetCredential(s.Token)
	m.set(&s)
	return s, true
}

// Logout forgets the session, the stored record and the API credential
func (m *Manager) Logout() error {
	m.api.SetCredential("")
	m.set(nil)

	if err := m.store.Delete(StorageKey); err != nil {
		return fmt.Errorf("delete stored session: %w", err)
	}
	return nil
}

// Current returns the held session
func (m *Manager) Current() (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return domain.Session{}, false
	}
	return *m.current, true
}

func (m *Manager) set(s *domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = s
}
