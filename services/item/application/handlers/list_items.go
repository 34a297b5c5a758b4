package handlers

import (
	"net/http"

	"github.com/ghuser/stowage/pkg/errhttp"
	"github.com/ghuser/stowage/pkg/httpx"
	appsvcs "github.com/ghuser/stowage/services/item/application/services"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists the whole catalog.
//
//	@Summary		List items
//	@Description	Returns every item in insertion order together with the snapshot epoch and version.
//	@Tags			items
//	@Produce		json
//	@Success		200	{object}	ListItemsResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Item.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ListItemsResponse{
		Items:   toItemResponses(snap.Items),
		Total:   len(snap.Items),
		Epoch:   snap.Epoch,
		Version: snap.Version,
	})
}
