package handlers

import (
	"net/http"

	"github.com/ghuser/stowage/pkg/errhttp"
	"github.com/ghuser/stowage/pkg/httpx"
	pkgvalidator "github.com/ghuser/stowage/pkg/validator"
	appsvcs "github.com/ghuser/stowage/services/item/application/services"
	"github.com/ghuser/stowage/services/item/domain/models"
)

// UpdateItemRequest replaces every mutable field of an item.
type UpdateItemRequest struct {
	Name        string `json:"name"        validate:"required,notblank,max=255" example:"Office cabinet"`
	Description string `json:"description" validate:"max=2000"                  example:"Metal cabinet for documents"`
	Location    string `json:"location"    validate:"max=255"                   example:"All things"`
	ImageURL    string `json:"image_url"   validate:"max=2048"                  example:"/placeholder.svg"`
} // @name UpdateItemRequest

// PutItemHandler handles PUT /items/{id} requests.
type PutItemHandler struct {
	svc *appsvcs.Services
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services) *PutItemHandler {
	return &PutItemHandler{svc: svc}
}

// Execute updates an item.
//
//	@Summary		Update item
//	@Description	Replaces name, description, location and image. Renames do not move children; they are reported as orphaned.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Item ID"	format(uuid)
//	@Param			request	body		UpdateItemRequest	true	"Item update request"
//	@Success		200		{object}	MutationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/{id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	out, err := h.svc.Item.Update(r.Context(), id, models.Patch{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toMutationResponse(out))
}
