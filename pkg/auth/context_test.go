package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestWithEditorID_EditorIDFromCtx(t *testing.T) {
	editorID := uuid.New()
	ctx := WithEditorID(context.Background(), editorID)

	got, err := EditorIDFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != editorID {
		t.Fatalf("expected %v, got %v", editorID, got)
	}
}

func TestEditorIDFromCtx_Missing(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"empty context", context.Background()},
		{"nil uuid", WithEditorID(context.Background(), uuid.Nil)},
		{"wrong type", context.WithValue(context.Background(), editorIDKey, "not-a-uuid")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EditorIDFromCtx(tt.ctx)
			if !errors.Is(err, ErrEditorNotFound) {
				t.Fatalf("expected ErrEditorNotFound, got %v", err)
			}
			if got != uuid.Nil {
				t.Fatalf("expected uuid.Nil, got %v", got)
			}
		})
	}
}
