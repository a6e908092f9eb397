package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"letterforge/internal/documents"
	"letterforge/internal/logging"
	"letterforge/internal/store"
	"letterforge/pkg/models"
)

var validate = validator.New()

// ListProfilesHandler returns the profile collection plus the active
// selection.
func ListProfilesHandler(profiles *store.ProfileStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"profiles":  profiles.List(),
			"active_id": profiles.ActiveID(),
		})
	}
}

// UpsertProfileHandler creates or wholesale-replaces a profile. The
// upserted profile becomes the active one.
func UpsertProfileHandler(profiles *store.ProfileStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)

		var req models.UpsertProfileRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, requestID, "Invalid request format")
		}
		if err := validate.Struct(&req); err != nil {
			return badRequest(c, requestID, err.Error())
		}

		if err := profiles.Upsert(c.Request().Context(), req.Profile); err != nil {
			return internalError(c, requestID, "Failed to save profile")
		}

		logging.GetGlobalLogger().Info("Profile upserted", map[string]interface{}{
			"profile_id": req.Profile.ID,
			"request_id": requestID,
		})
		return c.JSON(http.StatusOK, map[string]interface{}{
			"profile":   req.Profile,
			"active_id": profiles.ActiveID(),
		})
	}
}

// DeleteProfileHandler removes a profile. Unknown ids succeed silently.
func DeleteProfileHandler(profiles *store.ProfileStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		id := c.Param("id")

		if err := profiles.Delete(c.Request().Context(), id); err != nil {
			return internalError(c, requestID, "Failed to delete profile")
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// SelectProfileHandler marks a profile as the active one. The id is not
// validated against the collection.
func SelectProfileHandler(profiles *store.ProfileStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		profiles.Select(c.Param("id"))
		return c.JSON(http.StatusOK, map[string]interface{}{
			"active_id": profiles.ActiveID(),
		})
	}
}

// UploadDocumentsHandler reads a multipart batch of text files into
// documents. Files that cannot be read come back with empty content
// rather than failing the batch.
func UploadDocumentsHandler(reader *documents.Reader) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)

		form, err := c.MultipartForm()
		if err != nil {
			return badRequest(c, requestID, "Invalid multipart form")
		}

		files := form.File["files"]
		inputs := make([]documents.FileInput, 0, len(files))
		for _, fh := range files {
			inputs = append(inputs, documents.FileInput{
				Name: fh.Filename,
				Open: func() (io.ReadCloser, error) { return fh.Open() },
			})
		}

		docs := reader.ReadAll(c.Request().Context(), inputs)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"documents": docs,
		})
	}
}

func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok {
		return id
	}
	return ""
}

func badRequest(c echo.Context, requestID, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     "invalid_request",
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

func internalError(c echo.Context, requestID, message string) error {
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     "internal_error",
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
