package rostersdk

import (
	"context"
	"net/http"
)

// Admin only operations. Non-admin sessions get a 403 *APIError.

func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := s.do(ctx, http.MethodGet, "/users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) ListPendingUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := s.do(ctx, http.MethodGet, "/users/pending", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CountPendingUsers(ctx context.Context) (int, error) {
	var out CountResponse
	if err := s.do(ctx, http.MethodGet, "/users/pending/count", nil, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (s *Session) ApproveUser(ctx context.Context, id string) (*UserActionResponse, error) {
	var out UserActionResponse
	if err := s.do(ctx, http.MethodPut, pathf("/users/%s/approve", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RejectUser(ctx context.Context, id string) (*UserActionResponse, error) {
	var out UserActionResponse
	if err := s.do(ctx, http.MethodPut, pathf("/users/%s/reject", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteUser(ctx context.Context, id string) (*MessageResponse, error) {
	var out MessageResponse
	if err := s.do(ctx, http.MethodDelete, pathf("/users/%s", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
