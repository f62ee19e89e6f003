package rostersdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// Session performs requests on behalf of a logged in account.
type Session struct {
	client *SDKClient

	mu    sync.RWMutex
	token string
}

// Token returns the bearer token of the session.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Verify resolves the token to the current account.
func (s *Session) Verify(ctx context.Context) (*User, error) {
	var out VerifyResponse
	if err := s.do(ctx, http.MethodGet, "/auth/verify", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (s *Session) do(ctx context.Context, method, path string, body, target any, expected int) error {
	resp, err := s.client.doRequest(ctx, method, path, body, s.Token())
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expected)
}

func escape(id string) string { return url.PathEscape(id) }

func pathf(format string, id string) string { return fmt.Sprintf(format, escape(id)) }
