package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const editorIDKey contextKey = "editor_id"

// ErrEditorNotFound is returned when no editor id exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrEditorNotFound = errors.New("editor_id not found in context")

// EditorIDFromCtx extracts the editor id attached by LoadEditor or RequireEditor.
// Returns uuid.Nil and ErrEditorNotFound if none is set.
func EditorIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(editorIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrEditorNotFound
	}
	return id, nil
}

// WithEditorID returns a new context with the given editor id attached.
func WithEditorID(ctx context.Context, editorID uuid.UUID) context.Context {
	return context.WithValue(ctx, editorIDKey, editorID)
}
