package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/service"
	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
)

// writeServiceError maps service errors onto HTTP answers. Anything it does
// not recognise is logged and reported as a 500 without internal detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr        *service.ValidationError
		notApproved *service.AccountNotApprovedError
	)

	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error:   "Validation failed",
			Code:    "validation_failed",
			Details: verr.Fields,
		})

	case errors.As(err, &notApproved):
		httpx.WriteJSON(w, http.StatusUnauthorized, httpx.ErrorResponse{
			Error:  notApproved.Message(),
			Code:   "account_not_approved",
			Status: string(notApproved.Status),
		})

	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, httpx.ErrorResponse{
			Error: "Invalid email or password",
			Code:  "invalid_credentials",
		})

	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "User already exists",
			Code:  "email_taken",
		})

	case errors.Is(err, service.ErrAccountNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, httpx.ErrorResponse{
			Error: "User not found",
			Code:  "account_not_found",
		})

	case errors.Is(err, service.ErrRosterNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, httpx.ErrorResponse{
			Error: "Roaster not found",
			Code:  "roaster_not_found",
		})

	case errors.Is(err, service.ErrForbiddenSelfAction):
		httpx.WriteJSON(w, http.StatusForbidden, httpx.ErrorResponse{
			Error: "You cannot do this to your own account",
			Code:  "self_action_forbidden",
		})

	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// writeBadBody answers a body that could not be decoded.
func writeBadBody(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Debug("bad request body", "err", err)
	httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
		Error: "Invalid request body",
		Code:  "invalid_body",
	})
}
