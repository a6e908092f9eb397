package llm

import (
	"context"

	"letterforge/pkg/models"
)

// Provider defines the interface for language model providers.
type Provider interface {
	// ExtractJobDetails analyzes scraped posting text and returns
	// structured job details.
	ExtractJobDetails(ctx context.Context, content, link string) (*models.JobDetails, error)

	// ComposeCoverLetter writes a cover letter matching the profile
	// against the job.
	ComposeCoverLetter(ctx context.Context, job *models.JobDetails, profile *models.Profile) (*models.CoverLetterResponse, error)

	// IsHealthy checks if the provider is available.
	IsHealthy(ctx context.Context) error

	// Name returns the provider identifier.
	Name() string
}
