package models

// JobDetails represents the structured details extracted from a job posting
// link. It is transient session state: it is consumed by letter generation
// and, when a letter is saved, its Title/Company are copied into the
// resulting ApplicationRecord.
type JobDetails struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Requirements []string `json:"requirements"`
	Culture      string   `json:"culture"`
	Summary      string   `json:"summary"`
	RawText      string   `json:"raw_text,omitempty"`
}

// CoverLetterResponse is the transient result of one generation call. It
// becomes a persisted ApplicationRecord only when explicitly saved.
type CoverLetterResponse struct {
	Content     string   `json:"content"`
	Touchpoints []string `json:"touchpoints"`
	Suggestions []string `json:"suggestions"`
}
