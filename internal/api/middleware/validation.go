package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"letterforge/pkg/models"
	"letterforge/pkg/utils"
)

// RequestValidation middleware tags every request with an id and caps
// body size for mutating requests.
func RequestValidation() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := utils.GenerateRequestID()
			c.Set("request_id", requestID)
			c.Response().Header().Set("X-Request-ID", requestID)

			method := c.Request().Method
			if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
				if c.Request().ContentLength > 10*1024*1024 { // 10MB limit, documents can be large
					return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
						Error:     "request_too_large",
						Message:   "Request body too large",
						RequestID: requestID,
						Timestamp: time.Now(),
					})
				}
			}

			return next(c)
		}
	}
}
