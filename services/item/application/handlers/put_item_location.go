package handlers

import (
	"net/http"

	"github.com/ghuser/stowage/pkg/errhttp"
	"github.com/ghuser/stowage/pkg/httpx"
	pkgvalidator "github.com/ghuser/stowage/pkg/validator"
	appsvcs "github.com/ghuser/stowage/services/item/application/services"
)

// RelocateItemRequest names the new container of an item.
type RelocateItemRequest struct {
	Location string `json:"location" validate:"required,notblank,max=255" example:"Office cabinet"`
} // @name RelocateItemRequest

// PutItemLocationHandler handles PUT /items/{id}/location requests.
type PutItemLocationHandler struct {
	svc *appsvcs.Services
}

// NewPutItemLocationHandler returns a PutItemLocationHandler backed by the given services.
func NewPutItemLocationHandler(svc *appsvcs.Services) *PutItemLocationHandler {
	return &PutItemLocationHandler{svc: svc}
}

// Execute moves an item.
//
//	@Summary		Relocate item
//	@Description	Moves an item into the item with the given name. Moving to the current location is a no-op. Dangling or cyclic targets are accepted with a warning.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Item ID"	format(uuid)
//	@Param			request	body		RelocateItemRequest	true	"Relocation request"
//	@Success		200		{object}	MutationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/{id}/location [put]
func (h *PutItemLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, ok := pkgvalidator.ValidateRequest[RelocateItemRequest](w, r)
	if !ok {
		return
	}

	out, err := h.svc.Item.Relocate(r.Context(), id, req.Location)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toMutationResponse(out))
}
