package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/nfctrack/attendctl/internal/model"
	"github.com/nfctrack/attendctl/internal/repository"
)

var errNoSessionConfigured = errors.New("memory auth: no user configured")

// AuthRepository is the in-memory test double for the auth port
type AuthRepository struct {
	mu sync.Mutex

	// User is returned by Login and CurrentUser when set
	User *model.AuthenticatedUser

	// LoginErr fails Login; LogoutErr fails Logout; CurrentUserAbsent
	// forces CurrentUser to report no session
	LoginErr          error
	LogoutErr         error
	CurrentUserAbsent bool

	LogoutCalls int
}

// NewAuthRepository creates an auth repository with no session
func NewAuthRepository() *AuthRepository {
	return &AuthRepository{CurrentUserAbsent: true}
}

var _ repository.AuthRepository = (*AuthRepository)(nil)

func (r *AuthRepository) Login(ctx context.Context, creds model.Credentials) (*model.AuthenticatedUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoginErr != nil {
		return nil, r.LoginErr
	}
	if r.User == nil {
		return nil, errNoSessionConfigured
	}
	copy := *r.User
	return &copy, nil
}

func (r *AuthRepository) Logout(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LogoutCalls++
	return r.LogoutErr
}

func (r *AuthRepository) CurrentUser(ctx context.Context) (*model.AuthenticatedUser, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CurrentUserAbsent || r.User == nil {
		return nil, false
	}
	copy := *r.User
	return &copy, true
}
