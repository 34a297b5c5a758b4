package handlers

import (
	"net/http"

	"github.com/ghuser/stowage/pkg/errhttp"
	"github.com/ghuser/stowage/pkg/httpx"
	appsvcs "github.com/ghuser/stowage/services/item/application/services"
)

// GetTreeHandler handles GET /items/tree requests.
type GetTreeHandler struct {
	svc *appsvcs.Services
}

// NewGetTreeHandler returns a GetTreeHandler backed by the given services.
func NewGetTreeHandler(svc *appsvcs.Services) *GetTreeHandler {
	return &GetTreeHandler{svc: svc}
}

// Execute materializes the hierarchy below a name.
//
//	@Summary		Materialize tree
//	@Description	Builds the tree below the given name, or below the root item when root is omitted. Revisited names are returned as truncated leaves and listed in cycles.
//	@Tags			hierarchy
//	@Produce		json
//	@Param			root	query		string	false	"Name to start from"
//	@Success		200		{object}	TreeResponse
//	@Router			/items/tree [get]
func (h *GetTreeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.Item.Materialize(r.Context(), r.URL.Query().Get("root"))
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toTreeResponse(tree))
}
