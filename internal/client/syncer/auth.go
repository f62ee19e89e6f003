package syncer

import (
	"context"

	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
)

// Signup creates a pending account. It does not log in; the account needs
// admin approval first.
func (s *Syncer) Signup(ctx context.Context, req rostersdk.SignupRequest) (*rostersdk.SignupResponse, error) {
	return s.Client.Signup(ctx, req)
}

// Login exchanges credentials for a token and stores it with the account.
func (s *Syncer) Login(ctx context.Context, email, password string) (*rostersdk.User, error) {
	resp, err := s.Client.Login(ctx, rostersdk.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if err := s.Mirror.SaveSession(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout discards the stored token and cached account.
func (s *Syncer) Logout(ctx context.Context) error {
	return s.Mirror.ClearSession(ctx)
}

// Verify checks the stored token with the server and refreshes the cached
// account. A rejected token is discarded.
func (s *Syncer) Verify(ctx context.Context) (*rostersdk.User, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	user, err := sess.Verify(ctx)
	if err != nil {
		s.dropSessionOn401(ctx, err)
		return nil, err
	}

	if err := s.Mirror.SaveSession(ctx, sess.Token(), *user); err != nil {
		return nil, err
	}
	return user, nil
}

// CurrentAccount returns the cached account without contacting the server.
func (s *Syncer) CurrentAccount(ctx context.Context) (*rostersdk.User, error) {
	return s.Mirror.Account(ctx)
}
