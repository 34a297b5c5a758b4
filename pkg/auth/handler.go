package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/stowage/pkg/httpx"
	"github.com/ghuser/stowage/pkg/logger"
)

// SessionResponse is returned when an editor session starts.
type SessionResponse struct {
	EditorID uuid.UUID `json:"editor_id" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name SessionResponse

// SessionHandler starts and ends editor sessions.
type SessionHandler struct {
	store sessions.Store
	log   logger.Logger
}

// NewSessionHandler returns a SessionHandler backed by store.
func NewSessionHandler(store sessions.Store, log logger.Logger) *SessionHandler {
	return &SessionHandler{store: store, log: log}
}

// Start opens an editor session, or returns the current one.
//
//	@Summary		Start editor session
//	@Description	Issues a session cookie carrying a fresh editor id. An existing session is reused.
//	@Tags			session
//	@Produce		json
//	@Success		201	{object}	SessionResponse
//	@Failure		500	{object}	map[string]string
//	@Router			/session [post]
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if session == nil {
		h.log.ErrorContext(r.Context(), "failed to load session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "could not start session")
		return
	}
	if err != nil {
		h.log.WarnContext(r.Context(), "replacing unreadable session", "error", err)
	}

	id, err := editorFromSession(h.store, r)
	if err != nil {
		id = uuid.New()
		session.Values[sessionEditorIDKey] = id.String()
	}

	if err := session.Save(r, w); err != nil {
		h.log.ErrorContext(r.Context(), "failed to save session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "could not start session")
		return
	}

	h.log.InfoContext(r.Context(), "editor session started", "editor_id", id)
	httpx.JSON(w, http.StatusCreated, SessionResponse{EditorID: id})
}

// End expires the editor session.
//
//	@Summary		End editor session
//	@Tags			session
//	@Success		204
//	@Router			/session [delete]
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.log.ErrorContext(r.Context(), "failed to end session", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
