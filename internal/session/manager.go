package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nfctrack/attendctl/internal/model"
	"github.com/nfctrack/attendctl/internal/usecase"
)

// State is the process-wide authentication state
type State int

const (
	// StateBootstrapping is the initial state while the persisted token
	// is being probed against the server
	StateBootstrapping State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Manager is the authentication state machine every protected surface
// consults. Authenticated-ness is derived from user presence, never
// stored as a separate flag.
type Manager struct {
	auth   *usecase.AuthService
	logger *slog.Logger

	mu      sync.RWMutex
	state   State
	user    *model.AuthenticatedUser
	loading bool
}

// NewManager creates a manager in the Bootstrapping state
func NewManager(auth *usecase.AuthService, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		auth:   auth,
		logger: logger,
		state:  StateBootstrapping,
	}
}

// Bootstrap attempts to restore a previous session from the persisted
// token. It always leaves the manager in a terminal state.
func (m *Manager) Bootstrap(ctx context.Context) {
	user, ok := m.auth.CurrentUser(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.state = StateAuthenticated
		m.user = user
	} else {
		m.state = StateUnauthenticated
		m.user = nil
	}
	m.logger.Debug("session bootstrap complete", slog.String("state", m.state.String()))
}

// Login authenticates and transitions to Authenticated. On failure the
// manager ends Unauthenticated and the error is returned to the caller
// for display.
func (m *Manager) Login(ctx context.Context, creds model.Credentials) error {
	m.setLoading(true)
	defer m.setLoading(false)

	user, err := m.auth.Login(ctx, creds)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = StateUnauthenticated
		m.user = nil
		return err
	}
	m.state = StateAuthenticated
	m.user = user
	return nil
}

// Logout ends the session. It transitions to Unauthenticated
// unconditionally; the underlying use-case never surfaces a remote
// failure, only a local token-store one.
func (m *Manager) Logout(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	err := m.auth.Logout(ctx)

	m.mu.Lock()
	m.state = StateUnauthenticated
	m.user = nil
	m.mu.Unlock()

	return err
}

// State returns the current authentication state
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentUser returns the authenticated user, if any
func (m *Manager) CurrentUser() (*model.AuthenticatedUser, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil, false
	}
	user := *m.user
	return &user, true
}

// IsAuthenticated is derived from user presence
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// Loading reports whether a login or logout is in progress
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}
