package api

// responses.go provides helper functions for sending HTTP responses from the API handlers.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/conduit-demo/app/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the error body returned by every endpoint:
//
//	{"errors": {"body": ["email has already been taken"]}}
type ErrorResponse struct {
	Errors ErrorBody `json:"errors"`
}

type ErrorBody struct {
	Body []string `json:"body"`
}

// RespondWithError maps err to a status code and sends an ErrorResponse.
//
// The full error is logged server-side, the client only sees the APIError message.
// Errors that are not an *APIError are treated as internal errors.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	message := "internal error"

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		statusCode = apiErr.Code().HTTPStatus()
		message = apiErr.Message()
	}

	reqLogger := logger.ContextRequestLogger(r.Context())
	attrs := []any{
		slog.String("error", err.Error()),
		slog.Int("status_code", statusCode),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	}
	if statusCode >= http.StatusInternalServerError {
		if apiErr == nil {
			attrs = append(attrs, slog.String("error_type", fmt.Sprintf("%T", err)))
		}
		reqLogger.Error("Request failed", attrs...)
	} else {
		reqLogger.Warn("Request failed", attrs...)
	}

	RespondWithJSONPayload(w, statusCode, ErrorResponse{Errors: ErrorBody{Body: []string{message}}})
}

// RespondWithJSONPayload sends a JSON response with the given status code
func RespondWithJSONPayload(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			// If encoding fails, log it but don't try to send another response
			// (headers are already written)
			slog.Error("Failed to encode JSON response",
				slog.String("error", err.Error()),
			)
		}
	}
}
