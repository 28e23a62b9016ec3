package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
)

func TestCheckStatus(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name        string
		readyStatus int
		wantErr     bool
		wantLines   []string
	}{
		{
			name:        "healthy",
			readyStatus: http.StatusOK,
			wantLines:   []string{"OK   /healthz", "OK   /ready", "OK   /version"},
		},
		{
			name:        "database down",
			readyStatus: http.StatusServiceUnavailable,
			wantErr:     true,
			wantLines:   []string{"OK   /healthz", "FAIL /ready    503", "OK   /version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/ready":
					w.WriteHeader(tt.readyStatus)
					_, _ = w.Write([]byte(`{"status":"..."}`))
				default:
					_, _ = w.Write([]byte(`{"status":"ok"}`))
				}
			}))
			defer srv.Close()

			var out bytes.Buffer
			err := checkStatus(context.Background(), &out, &http.Client{Timeout: time.Second}, srv.URL+"/")

			if (err != nil) != tt.wantErr {
				t.Fatalf("checkStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, line := range tt.wantLines {
				if !strings.Contains(out.String(), line) {
					t.Errorf("output does not contain %q:\n%s", line, out.String())
				}
			}
		})
	}
}

func TestCheckStatusUnreachable(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	err := checkStatus(context.Background(), &out, &http.Client{Timeout: time.Second}, "http://127.0.0.1:1")
	if err != errUnhealthy {
		t.Fatalf("expected errUnhealthy, got %v", err)
	}
	if strings.Count(out.String(), "FAIL") != 3 {
		t.Errorf("expected every endpoint to fail:\n%s", out.String())
	}
}
