package handlers

import (
	"net/http"

	"github.com/ghuser/stowage/pkg/errhttp"
	"github.com/ghuser/stowage/pkg/httpx"
	pkgvalidator "github.com/ghuser/stowage/pkg/validator"
	appsvcs "github.com/ghuser/stowage/services/item/application/services"
	"github.com/ghuser/stowage/services/item/domain/models"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Name        string `json:"name"        validate:"required,notblank,max=255" example:"Office cabinet"`
	Description string `json:"description" validate:"max=2000"                  example:"Metal cabinet for documents"`
	Location    string `json:"location"    validate:"max=255"                   example:"All things"`
	ImageURL    string `json:"image_url"   validate:"max=2048"                  example:"/placeholder.svg"`
} // @name CreateItemRequest

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Adds an item to the catalog. An empty location places it in the root item. A location naming no item is accepted and reported as a warning.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	MutationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	out, err := h.svc.Item.Create(r.Context(), models.Draft{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toMutationResponse(out))
}
