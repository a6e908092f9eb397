package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"letterforge/internal/logging"
	"letterforge/internal/orchestrator"
	"letterforge/pkg/models"
	"letterforge/pkg/utils"
)

// SessionStateHandler returns the generator session snapshot.
func SessionStateHandler(session *orchestrator.Session) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, session.Snapshot())
	}
}

// AnalyzeHandler submits a job link for analysis. The session snapshot
// in the response carries either the extracted details or the overlaid
// error message.
func AnalyzeHandler(session *orchestrator.Session) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := requestID(c)
		logger := logging.GetGlobalLogger()

		var req models.AnalyzeRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, requestID, "Invalid request format")
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, requestID, err.Error())
		}

		logger.Info("Analyze request received", map[string]interface{}{
			"link":       req.Link,
			"request_id": requestID,
		})

		if err := session.SubmitLink(c.Request().Context(), req.Link, req.Options); err != nil {
			return sessionError(c, requestID, err, session)
		}

		snapshot := session.Snapshot()
		engine := ""
		if req.Options != nil {
			engine = req.Options.Engine
		}
		return c.JSON(http.StatusOK, models.AnalyzeResponse{
			Success:        true,
			Job:            snapshot.JobDetails,
			ProcessingTime: time.Since(startTime),
			Engine:         engine,
			RequestID:      requestID,
		})
	}
}

// GenerateHandler composes a cover letter for the analyzed job using the
// active profile.
func GenerateHandler(session *orchestrator.Session) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := requestID(c)

		if err := session.SubmitGenerate(c.Request().Context()); err != nil {
			return sessionError(c, requestID, err, session)
		}

		snapshot := session.Snapshot()
		return c.JSON(http.StatusOK, models.GenerateResponse{
			Success:        snapshot.Result != nil,
			Result:         snapshot.Result,
			ProcessingTime: time.Since(startTime),
			RequestID:      requestID,
		})
	}
}

// SaveHandler records the generated letter as a tracked application.
// Saving twice creates two records.
func SaveHandler(session *orchestrator.Session) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)

		record, err := session.SaveToTracker(c.Request().Context())
		if err != nil {
			return sessionError(c, requestID, err, session)
		}
		if record == nil {
			return badRequest(c, requestID, "Nothing to save: generate a cover letter first")
		}
		return c.JSON(http.StatusCreated, record)
	}
}

// ResetHandler clears the generator session back to idle.
func ResetHandler(session *orchestrator.Session) echo.HandlerFunc {
	return func(c echo.Context) error {
		session.Reset()
		return c.JSON(http.StatusOK, session.Snapshot())
	}
}

// sessionError maps a session failure to an HTTP response. The body
// carries the generic user-facing message from the session, not the
// underlying cause.
func sessionError(c echo.Context, requestID string, err error, session *orchestrator.Session) error {
	snapshot := session.Snapshot()

	code := http.StatusInternalServerError
	errorTag := "internal_error"
	if customErr, ok := err.(*utils.CustomError); ok {
		code = customErr.Code
		errorTag = "operation_failed"
	}

	message := snapshot.Error
	if message == "" {
		message = err.Error()
	}

	return c.JSON(code, models.ErrorResponse{
		Error:     errorTag,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
