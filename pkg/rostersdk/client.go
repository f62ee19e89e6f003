package rostersdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the unauthenticated part of the API.
type SDKClient struct {
	// BaseURL includes the API prefix, e.g. http://localhost:5000/api.
	BaseURL    string
	HTTPClient *http.Client
}

func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AuthenticateWithPassword logs in and returns a Session holding the token.
func (c *SDKClient) AuthenticateWithPassword(ctx context.Context, email, password string) (*Session, *LoginResponse, error) {
	resp, err := c.Login(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, nil, err
	}
	return c.NewSession(resp.Token), resp, nil
}

// NewSession wraps an existing token, e.g. one restored from local storage.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}
