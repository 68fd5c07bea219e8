package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const readinessTimeout = 5 * time.Second

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	pool        *pgxpool.Pool
	redisClient *redis.Client
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		pool:        pool,
		redisClient: redisClient,
	}
}

// Liveness returns 200 as long as the process serves requests.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness pings every configured backing store and reports per-component
// status. Stores that were not wired in (e.g. in tests) are skipped.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	components := map[string]string{}
	healthy := true

	if h.pool != nil {
		components["postgres"] = "ok"
		if err := h.pool.Ping(ctx); err != nil {
			components["postgres"] = err.Error()
			healthy = false
		}
	}

	if h.redisClient != nil {
		components["redis"] = "ok"
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			components["redis"] = err.Error()
			healthy = false
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status":     readinessLabel(healthy),
		"components": components,
	})
}

func readinessLabel(healthy bool) string {
	if healthy {
		return "ready"
	}

	return "unavailable"
}
