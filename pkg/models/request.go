package models

// AnalyzeRequest is the payload for submitting a job posting link to the
// generator session.
type AnalyzeRequest struct {
	Link    string          `json:"link" validate:"required,url"`
	Options *AnalyzeOptions `json:"options,omitempty"`
}

// AnalyzeOptions provides additional configuration for an analysis request.
type AnalyzeOptions struct {
	Engine      string `json:"engine,omitempty"`       // "firecrawl", "headed", "auto"
	LLMProvider string `json:"llm_provider,omitempty"` // "claude", "gemini"
}

// UpsertProfileRequest is the payload for creating or replacing a profile.
// The profile is replaced wholesale, never patched field by field.
type UpsertProfileRequest struct {
	Profile Profile `json:"profile" validate:"required"`
}

// UpdateStatusRequest is the payload for changing the pipeline status of a
// tracked application.
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required"`
}
