package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Common error constructors
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Detail:  detail,
	}
}

// NewNotFoundError returns an error for operations referencing a record id
// that no longer exists. Store mutations treat this case as a silent no-op;
// the constructor exists for read paths that must answer the client.
func NewNotFoundError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: "Record not found",
		Detail:  detail,
	}
}

// Analysis and generation errors collapse every upstream cause (transport,
// upstream service, unparseable response) into one category each. Callers
// surface a single generic message and never distinguish the causes.
func NewAnalysisError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Job link analysis failed",
		Detail:  detail,
	}
}

func NewGenerationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Cover letter generation failed",
		Detail:  detail,
	}
}

func NewScrapingError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Scraping failed",
		Detail:  detail,
	}
}
