package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"letterforge/internal/store"
	"letterforge/pkg/models"
)

// ListApplicationsHandler returns tracked applications, newest first.
func ListApplicationsHandler(applications *store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"applications": applications.List(),
		})
	}
}

// GetApplicationHandler returns a single tracked application.
func GetApplicationHandler(applications *store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		id := c.Param("id")

		record := applications.Get(id)
		if record == nil {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:     "not_found",
				Message:   "Application not found",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}
		return c.JSON(http.StatusOK, record)
	}
}

// UpdateApplicationStatusHandler changes the pipeline status of an
// application. Status is the only mutable field; unknown ids are a
// silent no-op.
func UpdateApplicationStatusHandler(applications *store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		id := c.Param("id")

		var req models.UpdateStatusRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, requestID, "Invalid request format")
		}
		if !req.Status.IsValid() {
			return badRequest(c, requestID, "Unknown application status: "+string(req.Status))
		}

		if err := applications.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
			return internalError(c, requestID, "Failed to update application status")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"id":     id,
			"status": req.Status,
		})
	}
}

// DeleteApplicationHandler removes a tracked application. Confirmation
// happens on the client; the API treats the delete as already confirmed.
func DeleteApplicationHandler(applications *store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		id := c.Param("id")

		if err := applications.Delete(c.Request().Context(), id); err != nil {
			return internalError(c, requestID, "Failed to delete application")
		}
		return c.NoContent(http.StatusNoContent)
	}
}
