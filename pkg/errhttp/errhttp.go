// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/ghuser/stowage/pkg/auth"
	"github.com/ghuser/stowage/pkg/httpx"
	itemdomain "github.com/ghuser/stowage/services/item/domain"
)

type verboseKey struct{}

// Verbose returns middleware that controls whether WriteError exposes 5xx
// messages for requests below it. Enable it outside production only.
func Verbose(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), verboseKey{}, enabled)))
		})
	}
}

func verbose(ctx context.Context) bool {
	v, _ := ctx.Value(verboseKey{}).(bool)
	return v
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors, whose
// message is masked unless the request passed through Verbose(true).
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, !verbose(r.Context())))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, itemdomain.ErrItemAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, itemdomain.ErrProtectedItem):
		return http.StatusConflict // 409
	case errors.Is(err, itemdomain.ErrInvalidItem):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, auth.ErrEditorNotFound):
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
