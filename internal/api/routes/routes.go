package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"letterforge/internal/api/handlers"
	"letterforge/internal/api/middleware"
	"letterforge/internal/config"
	"letterforge/internal/documents"
	"letterforge/internal/llm"
	"letterforge/internal/orchestrator"
	"letterforge/internal/scraper/workers"
	"letterforge/internal/storage"
	"letterforge/internal/store"
)

// Deps bundles the collaborators the route tree wires handlers to.
type Deps struct {
	Config       *config.Config
	Slots        storage.SlotStore
	Profiles     *store.ProfileStore
	Applications *store.ApplicationStore
	Login        *store.LoginState
	Documents    *documents.Reader
	Pool         *workers.Pool
	LLMManager   *llm.Manager
	Session      *orchestrator.Session
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, deps Deps) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// Selective timeout: 30s for most endpoints, 2 minutes for AI-backed endpoints
	e.Use(middleware.SelectiveTimeoutConfig(deps.Config.Server.ReadTimeout, 2*time.Minute))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/live", handlers.LivenessHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.Slots, deps.Pool, deps.LLMManager))
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(deps.Pool, deps.LLMManager))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.GET("/state", handlers.LoginStateHandler(deps.Login))
			auth.POST("/login", handlers.LoginHandler(deps.Login))
			auth.POST("/logout", handlers.LogoutHandler(deps.Login))
		}

		profiles := v1.Group("/profiles")
		{
			profiles.GET("", handlers.ListProfilesHandler(deps.Profiles))
			profiles.PUT("", handlers.UpsertProfileHandler(deps.Profiles))
			profiles.DELETE("/:id", handlers.DeleteProfileHandler(deps.Profiles))
			profiles.POST("/:id/select", handlers.SelectProfileHandler(deps.Profiles))
			profiles.POST("/documents", handlers.UploadDocumentsHandler(deps.Documents))
		}

		applications := v1.Group("/applications")
		{
			applications.GET("", handlers.ListApplicationsHandler(deps.Applications))
			applications.GET("/:id", handlers.GetApplicationHandler(deps.Applications))
			applications.PATCH("/:id/status", handlers.UpdateApplicationStatusHandler(deps.Applications))
			applications.DELETE("/:id", handlers.DeleteApplicationHandler(deps.Applications))
		}

		generator := v1.Group("/generator")
		{
			generator.GET("/state", handlers.SessionStateHandler(deps.Session))
			generator.POST("/analyze", handlers.AnalyzeHandler(deps.Session))
			generator.POST("/generate", handlers.GenerateHandler(deps.Session))
			generator.POST("/save", handlers.SaveHandler(deps.Session))
			generator.POST("/reset", handlers.ResetHandler(deps.Session))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Letterforge Cover Letter Generator",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
