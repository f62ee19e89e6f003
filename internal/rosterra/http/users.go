package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/domain"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/service"
	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
)

// UsersHandler serves the admin-only account management routes.
type UsersHandler struct {
	AccountService *service.AccountService
}

// HandleList godoc
//
//	@Summary	List all accounts
//	@Tags		Users
//	@Produce	json
//	@Success	200	{array}		rostersdk.User
//	@Failure	401	{object}	rostersdk.ErrorResponse
//	@Failure	403	{object}	rostersdk.ErrorResponse	"Admin access required"
//	@Security	BearerAuth
//	@Router		/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accs, err := h.AccountService.ListAccounts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUsers(accs))
}

// HandleListPending godoc
//
//	@Summary	List accounts awaiting approval
//	@Tags		Users
//	@Produce	json
//	@Success	200	{array}		rostersdk.User
//	@Failure	403	{object}	rostersdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/pending [get].
func (h *UsersHandler) HandleListPending(w http.ResponseWriter, r *http.Request) {
	accs, err := h.AccountService.ListPending(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUsers(accs))
}

// HandleCountPending godoc
//
//	@Summary	Count accounts awaiting approval
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	rostersdk.CountResponse
//	@Failure	403	{object}	rostersdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/pending/count [get].
func (h *UsersHandler) HandleCountPending(w http.ResponseWriter, r *http.Request) {
	n, err := h.AccountService.CountPending(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rostersdk.CountResponse{Count: n})
}

// HandleApprove godoc
//
//	@Summary	Approve an account
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string	true	"Account ID"
//	@Success	200	{object}	rostersdk.UserActionResponse
//	@Failure	404	{object}	rostersdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/{id}/approve [put].
func (h *UsersHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.AccountService.Approve, "User approved successfully")
}

// HandleReject godoc
//
//	@Summary	Reject an account
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string	true	"Account ID"
//	@Success	200	{object}	rostersdk.UserActionResponse
//	@Failure	403	{object}	rostersdk.ErrorResponse	"Cannot reject your own account"
//	@Failure	404	{object}	rostersdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/{id}/reject [put].
func (h *UsersHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.AccountService.Reject, "User rejected")
}

func (h *UsersHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, actorID, id string) (domain.Account, error),
	msg string,
) {
	p, _ := httpx.PrincipalFrom(r.Context())

	acc, err := apply(r.Context(), p.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rostersdk.UserActionResponse{
		Success: true,
		Message: msg,
		User:    toUser(acc),
	})
}

// HandleDelete godoc
//
//	@Summary	Delete an account
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string	true	"Account ID"
//	@Success	200	{object}	rostersdk.MessageResponse
//	@Failure	403	{object}	rostersdk.ErrorResponse	"Cannot delete your own account"
//	@Failure	404	{object}	rostersdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())

	if err := h.AccountService.Delete(r.Context(), p.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rostersdk.MessageResponse{
		Success: true,
		Message: "User deleted successfully",
	})
}
