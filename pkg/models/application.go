package models

import "time"

// ApplicationStatus is the pipeline status of a tracked application.
type ApplicationStatus string

const (
	StatusDraft        ApplicationStatus = "Draft"
	StatusApplied      ApplicationStatus = "Applied"
	StatusInterviewing ApplicationStatus = "Interviewing"
	StatusOffer        ApplicationStatus = "Offer"
	StatusRejected     ApplicationStatus = "Rejected"
)

// IsValid reports whether the status is one of the known pipeline states.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// ApplicationRecord is a persisted snapshot of one generated letter plus its
// tracked pipeline status. Once created, only Status may change; DateCreated,
// CoverLetter, Touchpoints, JobTitle and Company are immutable.
type ApplicationRecord struct {
	ID          string            `json:"id"`
	JobTitle    string            `json:"job_title"`
	Company     string            `json:"company"`
	Status      ApplicationStatus `json:"status"`
	DateCreated time.Time         `json:"date_created"`
	CoverLetter string            `json:"cover_letter"`
	Touchpoints []string          `json:"touchpoints"`
	JobLink     string            `json:"job_link,omitempty"`
}
