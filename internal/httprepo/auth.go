package httprepo

import (
	"context"

	"github.com/nfctrack/attendctl/internal/model"
	"github.com/nfctrack/attendctl/internal/repository"
)

// AuthRepository implements the auth port over the remote API
type AuthRepository struct {
	client *Client
}

// NewAuthRepository creates the HTTP auth adapter
func NewAuthRepository(client *Client) *AuthRepository {
	return &AuthRepository{client: client}
}

var _ repository.AuthRepository = (*AuthRepository)(nil)

func (r *AuthRepository) Login(ctx context.Context, creds model.Credentials) (*model.AuthenticatedUser, error) {
	var user model.AuthenticatedUser
	if err := r.client.post(ctx, "/auth/login", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) Logout(ctx context.Context) error {
	return r.client.post(ctx, "/auth/logout", nil, nil)
}

// CurrentUser probes /auth/me. It never fails: any transport or auth
// error just means there is no restorable session.
func (r *AuthRepository) CurrentUser(ctx context.Context) (*model.AuthenticatedUser, bool) {
	var user model.AuthenticatedUser
	if err := r.client.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, false
	}
	return &user, true
}
