package http

import (
	"net/http"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/service"
	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
)

type AuthHandler struct {
	AuthService    *service.AuthService
	AccountService *service.AccountService
}

// HandleSignup godoc
//
//	@Summary		Create an account
//	@Description	Creates a staff account in pending status. An admin must approve it before login works.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.SignupRequest		true	"Signup payload"
//	@Success		201		{object}	rostersdk.SignupResponse
//	@Failure		400		{object}	rostersdk.ErrorResponse	"Validation failed or email taken"
//	@Router			/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req rostersdk.SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	acc, err := h.AuthService.Signup(r.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, rostersdk.SignupResponse{
		Success: true,
		Message: "Account created successfully. Please wait for admin approval.",
		User:    toUser(acc),
	})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a bearer token. Pending and rejected accounts get 401 with code account_not_approved.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	rostersdk.LoginResponse
//	@Failure		401		{object}	rostersdk.ErrorResponse	"Invalid credentials or account not approved"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req rostersdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}

	token, acc, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("login", "account_id", acc.ID)
	httpx.WriteJSON(w, http.StatusOK, rostersdk.LoginResponse{
		Token: token,
		User:  toUser(acc),
	})
}

// HandleVerify godoc
//
//	@Summary		Verify the current token
//	@Description	Returns the account behind the bearer token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	rostersdk.VerifyResponse
//	@Failure		401	{object}	rostersdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/auth/verify [get].
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.PrincipalFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	acc, err := h.AccountService.GetAccount(r.Context(), p.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rostersdk.VerifyResponse{User: toUser(acc)})
}
