// Package auth provides credential checking and session lifecycle.
//
// The credential store is a static allow-list of size one, a stand-in for
// a real verifier. Nothing here is a security boundary: no hashing, no
// transport protection. A real deployment must not reuse this trust model.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/zangerai/zanger/internal/domain"
	"github.com/zangerai/zanger/internal/store"
)

// ErrInvalidCredentials is returned for any username/password pair other
// than the configured one.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is the single accepted pair plus the role granted on login.
type Credentials struct {
	Username string
	Password string
	Role     string
}

// Manager issues, restores, and clears the single active session.
type Manager struct {
	kv    store.KV
	creds Credentials

	mu      sync.Mutex
	current *domain.Session
}

// NewManager creates a session manager backed by the given store.
func NewManager(kv store.KV, creds Credentials) *Manager {
	return &Manager{kv: kv, creds: creds}
}

// Authenticate checks the credential pair and issues a session on success.
// Repeating the call with the valid pair is idempotent: the existing
// session is reused rather than reissued.
func (m *Manager) Authenticate(ctx context.Context, username, password string) (*domain.Session, error) {
	if username != m.creds.Username || password != m.creds.Password {
		return nil, ErrInvalidCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.Username == username {
		return m.current, nil
	}

	session := &domain.Session{
		ID:       "user-" + uuid.NewString(),
		Username: username,
		Role:     m.creds.Role,
	}
	if err := m.persist(ctx, session); err != nil {
		return nil, err
	}
	m.current = session
	return session, nil
}

// Logout clears the active session and its persisted record.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	if err := m.kv.Delete(ctx, store.KeyCurrentUser); err != nil {
		return err
	}
	return nil
}

// Restore attempts to resume a previously persisted session at boot.
// A malformed persisted record is purged and treated as logged out.
func (m *Manager) Restore(ctx context.Context) (*domain.Session, error) {
	raw, ok, err := m.kv.Get(ctx, store.KeyCurrentUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil || session.Username == "" {
		slog.Warn("Purging malformed persisted session", "error", err)
		if delErr := m.kv.Delete(ctx, store.KeyCurrentUser); delErr != nil {
			slog.Warn("Failed to purge malformed session", "error", delErr)
		}
		return nil, nil
	}

	m.mu.Lock()
	m.current = &session
	m.mu.Unlock()
	return &session, nil
}

// Current returns the active session, or nil when logged out.
func (m *Manager) Current() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manager) persist(ctx context.Context, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, store.KeyCurrentUser, raw)
}
