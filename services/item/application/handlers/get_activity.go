package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/stowage/pkg/errhttp"
	"github.com/ghuser/stowage/pkg/httpx"
	appsvcs "github.com/ghuser/stowage/services/item/application/services"
)

// GetActivityHandler handles GET /items/activity requests.
type GetActivityHandler struct {
	svc *appsvcs.Services
}

// NewGetActivityHandler returns a GetActivityHandler backed by the given services.
func NewGetActivityHandler(svc *appsvcs.Services) *GetActivityHandler {
	return &GetActivityHandler{svc: svc}
}

// Execute lists recent catalog edits.
//
//	@Summary		Recent activity
//	@Description	Audit trail recorded by the worker from change events, newest first.
//	@Tags			activity
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum entries (1-200)"	default(50)
//	@Success		200		{object}	ActivityResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/items/activity [get]
func (h *GetActivityHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if h.svc.Activity == nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "activity log is not configured")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpx.JSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.svc.Activity.Recent(r.Context(), limit)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toActivityResponse(entries))
}
