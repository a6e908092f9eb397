package models

import "time"

// AnalyzeResponse is the response to a successful link analysis.
type AnalyzeResponse struct {
	Success        bool          `json:"success"`
	Job            *JobDetails   `json:"job,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
	Engine         string        `json:"engine_used"`
	RequestID      string        `json:"request_id"`
}

// GenerateResponse is the response to a successful letter generation.
type GenerateResponse struct {
	Success        bool                 `json:"success"`
	Result         *CoverLetterResponse `json:"result,omitempty"`
	ProcessingTime time.Duration        `json:"processing_time"`
	RequestID      string               `json:"request_id"`
}

// SessionStateResponse exposes the generator session for clients.
type SessionStateResponse struct {
	State      string               `json:"state"`
	JobLink    string               `json:"job_link,omitempty"`
	JobDetails *JobDetails          `json:"job_details,omitempty"`
	Result     *CoverLetterResponse `json:"result,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
