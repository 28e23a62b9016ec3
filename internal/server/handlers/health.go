package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/conduit-demo/app/internal/api"
	"github.com/conduit-demo/app/internal/database"
	"github.com/conduit-demo/app/internal/logger"
)

// readinessProbeTimeout bounds the database round trip of /ready
const readinessProbeTimeout = 2 * time.Second

// HealthResponse is returned by /healthz and /ready.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Reason string `json:"reason,omitempty" example:"database unavailable"`
}

// HandleHealth godoc
//
//	@Summary		Health (liveness) Check
//	@Description	Check if the HTTP service is alive and responding.
//	@Tags			Common
//	@Produce		json
//
//	@Success		200	{object}	HealthResponse	"status ok"
//
//	@Router			/healthz [get]
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	api.RespondWithJSONPayload(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleReadiness godoc
//
//	@Summary		Readiness Check
//	@Description	Reports ready once the database answers a query.
//	@Tags			Common
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status ready"
//	@Failure		503	{object}	HealthResponse	"status not ready"
//	@Router			/ready [get]
func HandleReadiness(queries *database.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessProbeTimeout)
		defer cancel()

		if _, err := queries.IsDatabaseRunning(ctx); err != nil {
			logger.ContextRequestLogger(r.Context()).Warn("readiness check failed",
				slog.String("error", err.Error()),
			)
			api.RespondWithJSONPayload(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "not ready",
				Reason: "database unavailable",
			})
			return
		}

		api.RespondWithJSONPayload(w, http.StatusOK, HealthResponse{Status: "ready"})
	}
}
