package handlers

import (
	"net/http"

	"github.com/ghuser/stowage/pkg/errhttp"
	"github.com/ghuser/stowage/pkg/httpx"
	appsvcs "github.com/ghuser/stowage/services/item/application/services"
)

// GetOrphansHandler handles GET /items/orphans requests.
type GetOrphansHandler struct {
	svc *appsvcs.Services
}

// NewGetOrphansHandler returns a GetOrphansHandler backed by the given services.
func NewGetOrphansHandler(svc *appsvcs.Services) *GetOrphansHandler {
	return &GetOrphansHandler{svc: svc}
}

// Execute lists items cut off from the root.
//
//	@Summary		List orphans
//	@Description	orphans: items whose location names no item. unreachable: every non-root item missing from the root's tree, including descendants of orphans and location cycles.
//	@Tags			hierarchy
//	@Produce		json
//	@Success		200	{object}	OrphansResponse
//	@Router			/items/orphans [get]
func (h *GetOrphansHandler) Execute(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Item.Orphans(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, OrphansResponse{
		Orphans:     toItemResponses(report.Orphans),
		Unreachable: toItemResponses(report.Unreachable),
	})
}
