package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/dotcart/internal/cache"
	"github.com/dropDatabas3/dotcart/internal/httpx"
	"github.com/dropDatabas3/dotcart/internal/observability/logger"
	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type HealthHandlers struct {
	Repo  core.Repository
	Cache cache.Client
}

// Healthz: GET /healthz — vivo, sin tocar dependencias.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz: GET /readyz — listo para servir: DB y cache responden ping.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.Repo.Ping(ctx); err != nil {
		logger.Named("health").Warn("db ping failed", logger.Err(err))
		httpx.WriteError(w, http.StatusServiceUnavailable, "not_ready", "Database is not reachable.")
		return
	}
	if h.Cache != nil {
		if err := h.Cache.Ping(ctx); err != nil {
			logger.Named("health").Warn("cache ping failed", logger.Err(err))
			httpx.WriteError(w, http.StatusServiceUnavailable, "not_ready", "Cache is not reachable.")
			return
		}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
