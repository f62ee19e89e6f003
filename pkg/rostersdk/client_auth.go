package rostersdk

import (
	"context"
	"net/http"
)

// Signup creates a pending account. The account cannot log in until an admin
// approves it.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/signup", req, "")
	if err != nil {
		return nil, err
	}

	var out SignupResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token. Pending and rejected accounts get
// an *APIError with AccountStatus set.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", req, "")
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
