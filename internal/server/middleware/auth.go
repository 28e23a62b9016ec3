package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/conduit-demo/app/internal/api"
	"github.com/conduit-demo/app/internal/logger"
	"github.com/google/uuid"
)

type contextKey int

const userIDKey contextKey = iota

// TokenVerifier returns the subject of a valid access token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// ContextUserID returns the id of the authenticated user.
func ContextUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// ContextWithUserID is used by Authenticate (and tests) to attach the authenticated user.
func ContextWithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// Authenticate requires a valid access token in the Authorization header.
//
// Both "Token <jwt>" and "Bearer <jwt>" are accepted.
// Requests without a valid token get a 401 with the standard error body.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				api.RespondWithError(w, r, api.NewUnauthorizedError("missing authorization token"))
				return
			}

			subject, err := verifier.Verify(token)
			if err != nil {
				api.RespondWithError(w, r, api.WrapUnauthorizedError(err, "invalid authorization token"))
				return
			}

			userID, err := uuid.Parse(subject)
			if err != nil {
				api.RespondWithError(w, r, api.WrapUnauthorizedError(err, "invalid authorization token"))
				return
			}

			logger.ContextWithLogAttrs(r.Context(), slog.String("user_id", userID.String()))
			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
