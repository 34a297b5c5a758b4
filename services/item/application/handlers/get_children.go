package handlers

import (
	"net/http"

	"github.com/ghuser/stowage/pkg/errhttp"
	"github.com/ghuser/stowage/pkg/httpx"
	appsvcs "github.com/ghuser/stowage/services/item/application/services"
)

// GetChildrenHandler handles GET /items/children requests.
type GetChildrenHandler struct {
	svc *appsvcs.Services
}

// NewGetChildrenHandler returns a GetChildrenHandler backed by the given services.
func NewGetChildrenHandler(svc *appsvcs.Services) *GetChildrenHandler {
	return &GetChildrenHandler{svc: svc}
}

// Execute lists the items directly inside a location.
//
//	@Summary		List children
//	@Description	Returns items whose location equals the given name exactly (case-sensitive).
//	@Tags			hierarchy
//	@Produce		json
//	@Param			location	query		string	true	"Container name"
//	@Success		200			{object}	ItemsResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/items/children [get]
func (h *GetChildrenHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("location") {
		httpx.JSONError(w, http.StatusBadRequest, "location query parameter is required")
		return
	}

	items, err := h.svc.Item.ChildrenOf(r.Context(), q.Get("location"))
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ItemsResponse{Items: toItemResponses(items)})
}
