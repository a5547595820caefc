// Package session keeps the exercise cache aligned with who is signed in.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/h4nrul1/RepRight/internal/auth"
	"github.com/h4nrul1/RepRight/internal/domain"
)

// State is the identity lifecycle. The binding only acts once the state
// leaves StateUnknown.
type State int

const (
	StateUnknown State = iota // initial: persisted session not yet probed
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// UserAPI is the backend slice the binding needs: the idempotent identity
// upsert performed on every sign-in.
type UserAPI interface {
	UpsertUser(ctx context.Context, userID, email string) error
}

// ExerciseCache is the store surface the binding drives.
type ExerciseCache interface {
	Bind(user *domain.AuthUser)
	Clear()
	Refresh(ctx context.Context)
}

// Manager observes the identity provider and keeps the exercise cache
// scoped to the active user: sync the identity to the backend and pull
// exercises on sign-in, tear the cache down on sign-out. It reacts only to
// actual identity changes, never to repeated observations of the same user.
type Manager struct {
	provider auth.Provider
	users    UserAPI
	cache    ExerciseCache

	mu    sync.Mutex
	state State
	user  *domain.AuthUser
}

// NewManager creates a binding in the Unknown state.
func NewManager(provider auth.Provider, users UserAPI, cache ExerciseCache) *Manager {
	return &Manager{
		provider: provider,
		users:    users,
		cache:    cache,
	}
}

// Start probes the provider for a persisted session and leaves the Unknown
// state. Probe failure is not an error: it just means nobody is signed in.
func (m *Manager) Start(ctx context.Context) {
	user, err := m.provider.CurrentUser(ctx)
	if err != nil {
		m.setUser(ctx, nil)
		return
	}
	m.setUser(ctx, user)
}

// SignIn authenticates and, on success, binds the new identity.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	user, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	m.setUser(ctx, user)
	return nil
}

// SignUp passes through to the provider; no state transition happens until
// the account is confirmed and signed in.
func (m *Manager) SignUp(ctx context.Context, email, password string) error {
	return m.provider.SignUp(ctx, email, password)
}

// ConfirmSignUp passes through to the provider.
func (m *Manager) ConfirmSignUp(ctx context.Context, email, code string) error {
	return m.provider.ConfirmSignUp(ctx, email, code)
}

// SignOut tears down local state first, then revokes the provider session
// best effort. The cache is empty before any network round-trip starts.
func (m *Manager) SignOut(ctx context.Context) error {
	m.setUser(ctx, nil)
	if err := m.provider.SignOut(ctx); err != nil {
		log.Printf("ERROR: Provider sign-out failed: %v", err)
		return err
	}
	return nil
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the active identity, or nil.
func (m *Manager) User() *domain.AuthUser {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// setUser applies an identity transition. Same-user observations are
// dropped so the upsert-and-refresh sequence runs once per actual change.
func (m *Manager) setUser(ctx context.Context, user *domain.AuthUser) {
	m.mu.Lock()
	if m.state != StateUnknown && sameUser(m.user, user) {
		m.mu.Unlock()
		return
	}
	m.user = user
	if user == nil {
		m.state = StateAnonymous
	} else {
		m.state = StateAuthenticated
	}
	m.mu.Unlock()

	if user == nil {
		m.cache.Clear()
		return
	}

	m.cache.Bind(user)
	if err := m.users.UpsertUser(ctx, user.ID, user.Email); err != nil {
		// Exercises stay empty; nothing else to unwind.
		log.Printf("ERROR: Failed to sync user %s to backend: %v", user.ID, err)
		return
	}
	m.cache.Refresh(ctx)
}

func sameUser(a, b *domain.AuthUser) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
