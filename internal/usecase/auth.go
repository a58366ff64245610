package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfctrack/attendctl/internal/model"
	"github.com/nfctrack/attendctl/internal/repository"
	"github.com/nfctrack/attendctl/internal/token"
)

// AuthService owns the login/logout/restore rules around the auth port
// and the token store.
type AuthService struct {
	auth   repository.AuthRepository
	tokens *token.Store
	logger *slog.Logger
}

// NewAuthService creates an auth service over the given port and store
func NewAuthService(auth repository.AuthRepository, tokens *token.Store, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{auth: auth, tokens: tokens, logger: logger}
}

// Login authenticates and persists the returned bearer token. A 2xx
// response without a usable token is rejected: the client must not
// accept a session it cannot present on later requests.
func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (*model.AuthenticatedUser, error) {
	user, err := s.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	if user.Token == "" {
		return nil, fmt.Errorf("%w: login response carried no token", model.ErrProtocolViolation)
	}

	if err := s.tokens.Set(user.Token); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}

	return user, nil
}

// Logout ends the local session unconditionally. The remote logout is
// best-effort: a stuck logged-in client is worse than an orphaned
// server session, so a remote failure is logged and swallowed.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed, clearing local session anyway",
			slog.String("error", err.Error()))
	}

	return s.tokens.Clear()
}

// CurrentUser probes whether the persisted token still represents a
// live session. It never fails; absence covers every error case.
func (s *AuthService) CurrentUser(ctx context.Context) (*model.AuthenticatedUser, bool) {
	return s.auth.CurrentUser(ctx)
}
