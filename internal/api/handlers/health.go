package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"letterforge/internal/llm"
	"letterforge/internal/scraper/workers"
	"letterforge/internal/storage"
	"letterforge/pkg/models"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}
	return c.JSON(http.StatusOK, response)
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	}
	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the service's collaborators can serve
// requests. A degraded LLM provider does not fail readiness; generation
// endpoints report their own failures.
func ReadinessHandler(slots storage.SlotStore, pool *workers.Pool, llmManager *llm.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{"api": "ok"}
		status := "ready"
		code := http.StatusOK

		if err := slots.IsHealthy(c.Request().Context()); err == nil {
			checks["storage"] = "ok"
		} else {
			checks["storage"] = "unavailable"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}

		if pool.IsRunning() {
			checks["workers"] = "ok"
		} else {
			checks["workers"] = "stopped"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}

		if llmManager.IsHealthy() {
			checks["llm"] = "ok"
		} else {
			checks["llm"] = "degraded"
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// StatusHandler provides detailed service status
func StatusHandler(pool *workers.Pool, llmManager *llm.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":       "operational",
			"timestamp":    time.Now(),
			"uptime":       time.Since(startTime).String(),
			"llm_provider": llmManager.ProviderName(),
			"worker_pool":  pool.Stats(),
		})
	}
}
