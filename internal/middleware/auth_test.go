// ABOUTME: Tests for bearer token authentication middleware
// ABOUTME: Covers missing, malformed, unknown and valid tokens

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func staticValidator(tokens map[string]string) TokenValidator {
	return func(token string) (string, bool) {
		id, ok := tokens[token]
		return id, ok
	}
}

func TestAuth_Rejections(t *testing.T) {
	validate := staticValidator(map[string]string{"good": "u1"})

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"no header", "", "Authentication required"},
		{"basic scheme", "Basic dXNlcg==", "Invalid authorization format"},
		{"empty bearer", "Bearer ", "Invalid authorization format"},
		{"unknown token", "Bearer nope", "Invalid token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := Auth(validate)(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if called {
				t.Error("handler should not be called")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("Status = %d, want 401", rec.Code)
			}
			var body map[string]string
			json.NewDecoder(rec.Body).Decode(&body)
			if body["message"] != tc.message {
				t.Errorf("message = %q, want %q", body["message"], tc.message)
			}
		})
	}
}

func TestAuth_ValidToken_SetsUserID(t *testing.T) {
	var gotID string
	handler := Auth(staticValidator(map[string]string{"good": "u1"}))(func(w http.ResponseWriter, r *http.Request) {
		gotID = UserID(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", rec.Code)
	}
	if gotID != "u1" {
		t.Errorf("UserID = %q, want u1", gotID)
	}
}

func TestUserID_NoContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := UserID(req); id != "" {
		t.Errorf("expected empty id, got %q", id)
	}
	if id := UserID(WithUserID(req, "u9")); id != "u9" {
		t.Errorf("expected u9, got %q", id)
	}
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONError(rec, "Invalid credentials", http.StatusUnauthorized)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["message"] != "Invalid credentials" {
		t.Errorf("unexpected body %v", body)
	}
}
