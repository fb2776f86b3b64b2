package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/canvashub/content-gateway/utils"
)

// HealthResponse is the payload for the liveness and readiness endpoints
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler serves the gateway's liveness and readiness probes
type HealthHandler struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *sql.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// HandleHealth handles GET /healthz
// Liveness only: returns 200 whenever the process is serving requests
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_ = utils.WriteOK(w, response)
}

// HandleReadiness handles GET /readyz
// The gateway is ready when the submissions store answers queries; anything
// less returns 503 so no new submissions are routed here
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allHealthy := true

	if err := h.checkSubmissionsStore(ctx); err != nil {
		h.logger.Warn("submissions store readiness check failed", zap.Error(err))
		checks["submissions_store"] = "unhealthy"
		allHealthy = false
	} else {
		checks["submissions_store"] = "healthy"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	if err := utils.WriteJSON(w, httpStatus, utils.SuccessResponse{Data: response}); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}

// checkSubmissionsStore pings the pool and queries the submissions table, so
// a missing schema fails readiness, not just a dead connection
func (h *HealthHandler) checkSubmissionsStore(ctx context.Context) error {
	if h.db == nil {
		return nil // running without a store, nothing to check
	}

	if err := h.db.PingContext(ctx); err != nil {
		return err
	}

	var count int
	return h.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM submissions").Scan(&count)
}
