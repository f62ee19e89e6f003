package rostersdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is any non-2xx answer from the server.
type APIError struct {
	StatusCode int

	// Message is the server's "error" text.
	Message string

	// Code is the machine readable reason when the server sends one,
	// e.g. "token_expired" or "account_not_approved".
	Code string

	// AccountStatus is set when login or the gate refused an account that
	// is not approved ("pending" or "rejected").
	AccountStatus string

	// Details holds per-field validation messages.
	Details map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rostersdk: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("rostersdk: HTTP %d: %s", e.StatusCode, e.Message)
}

// TransportError wraps failures that happened before a response was read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "rostersdk: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// IsUnavailable reports whether err means the server could not be reached or
// failed on its side (network error or 5xx).
func IsUnavailable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusInternalServerError
}

// IsUnauthorized reports a 401, i.e. the token is no longer usable.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports a 404 for the addressed record.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ValidationError is returned by the client side checks before a request is
// sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "rostersdk: invalid input: " + strings.Join(parts, ", ")
}

func parseErrorResponse(status int, body []byte) error {
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return &APIError{
			StatusCode:    status,
			Message:       resp.Error,
			Code:          resp.Code,
			AccountStatus: resp.Status,
			Details:       resp.Details,
		}
	}
	return &APIError{StatusCode: status, Message: http.StatusText(status)}
}
