package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// aiPaths are endpoints that call out to a language model and need a
// longer deadline than the rest of the API.
var aiPaths = []string{
	"/api/v1/generator/analyze",
	"/api/v1/generator/generate",
}

// SelectiveTimeoutConfig applies defaultTimeout to most endpoints and
// aiTimeout to model-backed endpoints.
func SelectiveTimeoutConfig(defaultTimeout, aiTimeout time.Duration) echo.MiddlewareFunc {
	standard := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: defaultTimeout})
	extended := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: aiTimeout})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		standardNext := standard(next)
		extendedNext := extended(next)

		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, aiPath := range aiPaths {
				if strings.HasPrefix(path, aiPath) {
					return extendedNext(c)
				}
			}
			return standardNext(c)
		}
	}
}
