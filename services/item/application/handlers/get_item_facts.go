package handlers

import (
	"net/http"

	"github.com/ghuser/stowage/pkg/errhttp"
	"github.com/ghuser/stowage/pkg/httpx"
	appsvcs "github.com/ghuser/stowage/services/item/application/services"
)

// GetItemFactsHandler handles GET /items/{id}/facts requests.
type GetItemFactsHandler struct {
	svc *appsvcs.Services
}

// NewGetItemFactsHandler returns a GetItemFactsHandler backed by the given services.
func NewGetItemFactsHandler(svc *appsvcs.Services) *GetItemFactsHandler {
	return &GetItemFactsHandler{svc: svc}
}

// Execute returns depth, leaf status, parent and ancestors of an item.
//
//	@Summary		Item facts
//	@Description	Ancestors are listed nearest first. Parent is null for the root and for a dangling location.
//	@Tags			hierarchy
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"	format(uuid)
//	@Success		200	{object}	FactsResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/items/{id}/facts [get]
func (h *GetItemFactsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	facts, err := h.svc.Item.Facts(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, FactsResponse{
		Item:      toItemResponse(facts.Item),
		Depth:     facts.Depth,
		IsLeaf:    facts.IsLeaf,
		Parent:    toItemResponsePtr(facts.Parent),
		Ancestors: toItemResponses(facts.Ancestors),
	})
}
