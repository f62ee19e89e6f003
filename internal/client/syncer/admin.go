package syncer

import (
	"context"

	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
)

// Admin calls go straight to the server; there is nothing to fall back to.

func (s *Syncer) ListUsers(ctx context.Context) ([]rostersdk.User, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	users, err := sess.ListUsers(ctx)
	s.dropSessionOn401(ctx, err)
	return users, err
}

func (s *Syncer) ListPendingUsers(ctx context.Context) ([]rostersdk.User, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	users, err := sess.ListPendingUsers(ctx)
	s.dropSessionOn401(ctx, err)
	return users, err
}

func (s *Syncer) CountPendingUsers(ctx context.Context) (int, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return 0, err
	}
	n, err := sess.CountPendingUsers(ctx)
	s.dropSessionOn401(ctx, err)
	return n, err
}

func (s *Syncer) ApproveUser(ctx context.Context, id string) (*rostersdk.UserActionResponse, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := sess.ApproveUser(ctx, id)
	s.dropSessionOn401(ctx, err)
	return resp, err
}

func (s *Syncer) RejectUser(ctx context.Context, id string) (*rostersdk.UserActionResponse, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := sess.RejectUser(ctx, id)
	s.dropSessionOn401(ctx, err)
	return resp, err
}

func (s *Syncer) DeleteUser(ctx context.Context, id string) (*rostersdk.MessageResponse, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := sess.DeleteUser(ctx, id)
	s.dropSessionOn401(ctx, err)
	return resp, err
}
