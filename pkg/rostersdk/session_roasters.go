package rostersdk

import (
	"context"
	"net/http"
)

func (s *Session) ListRoasters(ctx context.Context) ([]Roaster, error) {
	var out []Roaster
	if err := s.do(ctx, http.MethodGet, "/roasters", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetRoaster(ctx context.Context, id string) (*Roaster, error) {
	var out Roaster
	if err := s.do(ctx, http.MethodGet, pathf("/roasters/%s", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateRoaster(ctx context.Context, in RoasterInput) (*Roaster, error) {
	var out Roaster
	if err := s.do(ctx, http.MethodPost, "/roasters", in, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRoastersBulk creates every item independently; check the per-item
// results for failures.
func (s *Session) CreateRoastersBulk(ctx context.Context, items []RoasterInput) (*BulkResponse, error) {
	var out BulkResponse
	if err := s.do(ctx, http.MethodPost, "/roasters/bulk", BulkRequest{Roasters: items}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRoaster merges the supplied fields into the stored record.
func (s *Session) UpdateRoaster(ctx context.Context, id string, in RoasterInput) (*Roaster, error) {
	var out Roaster
	if err := s.do(ctx, http.MethodPut, pathf("/roasters/%s", id), in, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteRoaster(ctx context.Context, id string) (*MessageResponse, error) {
	var out MessageResponse
	if err := s.do(ctx, http.MethodDelete, pathf("/roasters/%s", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ClearRoasters(ctx context.Context) (*ClearResponse, error) {
	var out ClearResponse
	if err := s.do(ctx, http.MethodDelete, "/roasters/clear/all", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
