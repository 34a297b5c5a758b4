package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stowage/pkg/app"
	"github.com/ghuser/stowage/pkg/auth"
	"github.com/ghuser/stowage/services/item/application/handlers"
	appsvcs "github.com/ghuser/stowage/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
// Reads are open; writes pass through the editor middleware.
func ItemRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	r.Route("/items", func(r chi.Router) {
		r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
		r.Get("/children", handlers.NewGetChildrenHandler(svcs).Execute)
		r.Get("/tree", handlers.NewGetTreeHandler(svcs).Execute)
		r.Get("/orphans", handlers.NewGetOrphansHandler(svcs).Execute)
		r.Get("/export", handlers.NewGetExportHandler(svcs).Execute)
		r.Get("/activity", handlers.NewGetActivityHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetItemHandler(svcs).Execute)
		r.Get("/{id}/facts", handlers.NewGetItemFactsHandler(svcs).Execute)

		r.Group(func(r chi.Router) {
			r.Use(editorMiddleware(a))
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutItemHandler(svcs).Execute)
			r.Put("/{id}/location", handlers.NewPutItemLocationHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs).Execute)
		})
	})
}

// editorMiddleware attaches the editor id to write requests. With
// RequireEditorSession set, writes without a session are rejected.
func editorMiddleware(a *app.Application) func(http.Handler) http.Handler {
	switch {
	case a.SessionStore == nil:
		return func(next http.Handler) http.Handler { return next }
	case a.Config.RequireEditorSession:
		return auth.RequireEditor(a.SessionStore, a.Logger)
	default:
		return auth.LoadEditor(a.SessionStore, a.Logger)
	}
}
