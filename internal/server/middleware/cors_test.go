package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestCORS(t *testing.T) {
	corsMiddleware, err := CORS([]string{`^https://app\.example\.com$`, `^http://localhost:\d+$`})
	if err != nil {
		t.Fatalf("CORS() failed: %v", err)
	}

	router := chi.NewRouter()
	router.Use(corsMiddleware)
	router.Get("/api/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Put("/api/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		origin      string
		wantAllowed bool
	}{
		{"exact origin", "https://app.example.com", true},
		{"localhost any port", "http://localhost:5173", true},
		{"unlisted origin", "https://evil.example.com", false},
		{"suffix attack", "https://app.example.com.evil.net", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			got := rr.Header().Get("Access-Control-Allow-Origin")
			if tt.wantAllowed && got != tt.origin {
				t.Errorf("expected origin %q to be allowed, got %q", tt.origin, got)
			}
			if !tt.wantAllowed && got != "" {
				t.Errorf("expected origin %q to be rejected, got %q", tt.origin, got)
			}
			if tt.wantAllowed && rr.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Error("expected credentials to be allowed")
			}
		})
	}

	preflights := []struct {
		name           string
		requestHeaders string
		wantAllowed    bool
	}{
		// browsers send the requested headers lower case and sorted
		{"authorization header", "authorization", true},
		{"json body", "authorization,content-type", true},
		{"header not in the allow list", "x-custom", false},
	}

	for _, tt := range preflights {
		t.Run("preflight "+tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/user", nil)
			req.Header.Set("Origin", "https://app.example.com")
			req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			req.Header.Set("Access-Control-Request-Headers", tt.requestHeaders)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			got := rr.Header().Get("Access-Control-Allow-Origin")
			if tt.wantAllowed && got != "https://app.example.com" {
				t.Errorf("preflight not allowed, got origin header %q", got)
			}
			if !tt.wantAllowed && got != "" {
				t.Errorf("preflight should be rejected, got origin header %q", got)
			}
		})
	}
}

func TestCORSInvalidPattern(t *testing.T) {
	if _, err := CORS([]string{"("}); err == nil {
		t.Error("expected invalid regex to be rejected")
	}
}
