package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(token string) (string, error) {
	subject, ok := s[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return subject, nil
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	verifier := stubVerifier{
		"good":       userID.String(),
		"not-a-uuid": "jake",
	}

	router := chi.NewRouter()
	router.Use(Authenticate(verifier))
	router.Get("/api/user", func(w http.ResponseWriter, r *http.Request) {
		id, ok := ContextUserID(r.Context())
		if !ok || id != userID {
			t.Errorf("expected user id %s in context, got %s (ok=%v)", userID, id, ok)
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"token scheme", "Token good", http.StatusOK},
		{"bearer scheme", "Bearer good", http.StatusOK},
		{"lower case scheme", "token good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"no scheme", "good", http.StatusUnauthorized},
		{"unknown scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Token ", http.StatusUnauthorized},
		{"invalid token", "Token bad", http.StatusUnauthorized},
		{"subject not a uuid", "Token not-a-uuid", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Errorf("got status %d, want %d", rr.Code, tt.wantCode)
			}
		})
	}
}
