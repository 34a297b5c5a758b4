package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/stowage/pkg/httpx"
	"github.com/ghuser/stowage/pkg/logger"
)

const sessionName = "stowage_session"
const sessionEditorIDKey = "editor_id"

var errNoEditorInSession = errors.New("session has no editor_id")

// editorFromSession reads the editor id stored by SessionHandler.Start.
func editorFromSession(store sessions.Store, r *http.Request) (uuid.UUID, error) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return uuid.Nil, fmt.Errorf("load session: %w", err)
	}
	raw, ok := session.Values[sessionEditorIDKey].(string)
	if !ok || raw == "" {
		return uuid.Nil, errNoEditorInSession
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse editor_id %q: %w", raw, err)
	}
	return id, nil
}

// LoadEditor attaches the session's editor id to the request context when
// one is present. Requests without a session pass through unchanged.
func LoadEditor(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := editorFromSession(store, r)
			if err != nil {
				if !errors.Is(err, errNoEditorInSession) {
					log.DebugContext(r.Context(), "ignoring editor session", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithEditorID(r.Context(), id)))
		})
	}
}

// RequireEditor is a chi middleware that rejects requests without a valid
// editor session with 401 Unauthorized.
//
// After this middleware, handlers can safely call auth.EditorIDFromCtx(r.Context()).
func RequireEditor(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := editorFromSession(store, r)
			if err != nil {
				log.WarnContext(r.Context(), "editor session required", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "editor session required")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithEditorID(r.Context(), id)))
		})
	}
}
