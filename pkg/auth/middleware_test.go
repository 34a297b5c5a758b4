package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/stowage/pkg/config"
	"github.com/ghuser/stowage/pkg/logger"
)

// newTestStore returns a gorilla CookieStore (no Redis required) for unit tests.
// In production the RedisStore is used; the sessions.Store interface is identical.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

// newTestLogger creates a logger that discards output.
func newTestLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

// requestWithValue builds a request carrying a session cookie whose editor_id
// is set to value (omitted when value is nil).
func requestWithValue(t *testing.T, store sessions.Store, value any) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/items", nil)

	session, err := store.Get(r, sessionName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if value != nil {
		session.Values[sessionEditorIDKey] = value
	}
	if err := session.Save(r, w); err != nil {
		t.Fatalf("save session: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/items", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestRequireEditor(t *testing.T) {
	editorID := uuid.New()

	tests := []struct {
		name       string
		value      any
		noCookie   bool
		wantStatus int
	}{
		{"valid session", editorID.String(), false, http.StatusOK},
		{"missing cookie", nil, true, http.StatusUnauthorized},
		{"session without editor", nil, false, http.StatusUnauthorized},
		{"invalid editor id", "not-a-valid-uuid", false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			var captured uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured, _ = EditorIDFromCtx(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest(http.MethodPost, "/api/items", nil)
			if !tt.noCookie {
				r = requestWithValue(t, store, tt.value)
			}
			w := httptest.NewRecorder()
			RequireEditor(store, newTestLogger())(next).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK && captured != editorID {
				t.Fatalf("expected editor %v in context, got %v", editorID, captured)
			}
		})
	}
}

func TestLoadEditor(t *testing.T) {
	store := newTestStore()
	editorID := uuid.New()

	t.Run("attaches editor when present", func(t *testing.T) {
		var captured uuid.UUID
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = EditorIDFromCtx(r.Context())
		})
		LoadEditor(store, newTestLogger())(next).ServeHTTP(httptest.NewRecorder(), requestWithValue(t, store, editorID.String()))
		if captured != editorID {
			t.Fatalf("expected %v, got %v", editorID, captured)
		}
	})

	t.Run("passes through without session", func(t *testing.T) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			if _, err := EditorIDFromCtx(r.Context()); err == nil {
				t.Error("expected no editor in context")
			}
		})
		w := httptest.NewRecorder()
		LoadEditor(store, newTestLogger())(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items", nil))
		if !called || w.Code != http.StatusOK {
			t.Fatalf("expected pass-through, called=%v code=%d", called, w.Code)
		}
	})
}

func TestSessionHandler_StartAndEnd(t *testing.T) {
	store := newTestStore()
	h := NewSessionHandler(store, newTestLogger())

	w := httptest.NewRecorder()
	h.Start(w, httptest.NewRequest(http.MethodPost, "/api/session", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var resp SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.EditorID == uuid.Nil {
		t.Fatal("expected a fresh editor id")
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	// A second start with the cookie returns the same editor.
	r := httptest.NewRequest(http.MethodPost, "/api/session", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w = httptest.NewRecorder()
	h.Start(w, r)
	var again SessionResponse
	_ = json.NewDecoder(w.Body).Decode(&again)
	if again.EditorID != resp.EditorID {
		t.Fatalf("expected session reuse, got %v then %v", resp.EditorID, again.EditorID)
	}

	// The cookie authorizes RequireEditor.
	r = httptest.NewRequest(http.MethodPut, "/api/items/x", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	var captured uuid.UUID
	RequireEditor(store, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = EditorIDFromCtx(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), r)
	if captured != resp.EditorID {
		t.Fatalf("expected %v from cookie, got %v", resp.EditorID, captured)
	}

	// End expires the cookie.
	r = httptest.NewRequest(http.MethodDelete, "/api/session", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w = httptest.NewRecorder()
	h.End(w, r)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	expired := false
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionName && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Fatal("expected an expired session cookie")
	}
}
