package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/stowage/pkg/errhttp"
	"github.com/ghuser/stowage/pkg/httpx"
	appsvcs "github.com/ghuser/stowage/services/item/application/services"
)

// GetExportHandler handles GET /items/export requests.
type GetExportHandler struct {
	svc *appsvcs.Services
}

// NewGetExportHandler returns a GetExportHandler backed by the given services.
func NewGetExportHandler(svc *appsvcs.Services) *GetExportHandler {
	return &GetExportHandler{svc: svc}
}

// Execute downloads the catalog as a JSON document.
//
//	@Summary		Export catalog
//	@Tags			items
//	@Produce		json
//	@Success		200	{object}	ExportResponse
//	@Router			/items/export [get]
func (h *GetExportHandler) Execute(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Item.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="catalog.json"`)
	httpx.JSON(w, http.StatusOK, ExportResponse{
		ExportedAt: time.Now().UTC(),
		Items:      toItemResponses(snap.Items),
	})
}
