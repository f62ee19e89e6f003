package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/service"
	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
)

// MaxBulkItems caps one bulk create request.
const MaxBulkItems = 1000

// RoastersHandler serves roster CRUD for approved accounts.
type RoastersHandler struct {
	RosterService *service.RosterService
}

// HandleList godoc
//
//	@Summary	List roster profiles
//	@Tags		Roasters
//	@Produce	json
//	@Success	200	{array}		rostersdk.Roaster
//	@Failure	401	{object}	rostersdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/roasters [get].
func (h *RoastersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ps, err := h.RosterService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoasters(ps))
}

// HandleGet godoc
//
//	@Summary	Get one roster profile
//	@Tags		Roasters
//	@Produce	json
//	@Param		id	path		string	true	"Profile ID"
//	@Success	200	{object}	rostersdk.Roaster
//	@Failure	404	{object}	rostersdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/roasters/{id} [get].
func (h *RoastersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.RosterService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoaster(p))
}

// HandleCreate godoc
//
//	@Summary		Create a roster profile
//	@Description	Only name is required. Followers default to 0 and status to pending.
//	@Tags			Roasters
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.RoasterInput	true	"Profile fields"
//	@Success		201		{object}	rostersdk.Roaster
//	@Failure		400		{object}	rostersdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/roasters [post].
func (h *RoastersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in rostersdk.RoasterInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeBadBody(w, r, err)
		return
	}

	patch, err := toPatch(in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	p, _ := httpx.PrincipalFrom(r.Context())
	out, err := h.RosterService.Create(r.Context(), p.ID, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toRoaster(out))
}

// HandleCreateBulk godoc
//
//	@Summary		Create many roster profiles
//	@Description	Each entry is created on its own. The response lists the outcome of every entry in input order.
//	@Tags			Roasters
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.BulkRequest	true	"Profiles"
//	@Success		201		{object}	rostersdk.BulkResponse
//	@Failure		400		{object}	rostersdk.ErrorResponse	"Not a non-empty array"
//	@Security		BearerAuth
//	@Router			/roasters/bulk [post].
func (h *RoastersHandler) HandleCreateBulk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Roasters []json.RawMessage `json:"roasters"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, r, err)
		return
	}
	if len(req.Roasters) == 0 {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: "roasters must be a non-empty array",
			Code:  "validation_failed",
		})
		return
	}
	if len(req.Roasters) > MaxBulkItems {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error: fmt.Sprintf("at most %d roasters per request", MaxBulkItems),
			Code:  "validation_failed",
		})
		return
	}

	items := make([]service.BulkItem, len(req.Roasters))
	for i, raw := range req.Roasters {
		var in rostersdk.RoasterInput
		if err := json.Unmarshal(raw, &in); err != nil {
			items[i].Err = fmt.Errorf("invalid entry: %w", err)
			continue
		}
		items[i].Patch, items[i].Err = toPatch(in)
	}

	p, _ := httpx.PrincipalFrom(r.Context())
	results := h.RosterService.CreateBulk(r.Context(), p.ID, items)

	resp := rostersdk.BulkResponse{Results: make([]rostersdk.BulkResult, 0, len(results))}
	for _, res := range results {
		out := rostersdk.BulkResult{Index: res.Index, Success: res.Err == nil}
		if res.Err != nil {
			out.Error = res.Err.Error()
			resp.Failed++
		} else {
			rst := toRoaster(*res.Profile)
			out.Roaster = &rst
			resp.Created++
		}
		resp.Results = append(resp.Results, out)
	}
	resp.Success = resp.Failed == 0
	resp.Message = fmt.Sprintf("Created %d roasters, %d failed", resp.Created, resp.Failed)

	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleUpdate godoc
//
//	@Summary		Update a roster profile
//	@Description	Only the supplied fields change. An empty age clears it.
//	@Tags			Roasters
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Profile ID"
//	@Param			request	body		rostersdk.RoasterInput	true	"Fields to change"
//	@Success		200		{object}	rostersdk.Roaster
//	@Failure		400		{object}	rostersdk.ErrorResponse
//	@Failure		404		{object}	rostersdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/roasters/{id} [put].
func (h *RoastersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in rostersdk.RoasterInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeBadBody(w, r, err)
		return
	}

	patch, err := toPatch(in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out, err := h.RosterService.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoaster(out))
}

// HandleDelete godoc
//
//	@Summary	Delete a roster profile
//	@Tags		Roasters
//	@Produce	json
//	@Param		id	path		string	true	"Profile ID"
//	@Success	200	{object}	rostersdk.MessageResponse
//	@Failure	404	{object}	rostersdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/roasters/{id} [delete].
func (h *RoastersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.RosterService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rostersdk.MessageResponse{
		Success: true,
		Message: "Roaster deleted successfully",
	})
}

// HandleClear godoc
//
//	@Summary	Delete every roster profile
//	@Tags		Roasters
//	@Produce	json
//	@Success	200	{object}	rostersdk.ClearResponse
//	@Security	BearerAuth
//	@Router		/roasters/clear/all [delete].
func (h *RoastersHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	n, err := h.RosterService.Clear(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rostersdk.ClearResponse{
		Success:      true,
		Message:      fmt.Sprintf("Deleted %d roasters", n),
		DeletedCount: n,
	})
}
