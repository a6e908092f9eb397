package scraper

import (
	"context"

	"letterforge/pkg/models"
)

// Engine defines the interface for all scraping engines.
type Engine interface {
	// ScrapeContent fetches the page behind the given URL.
	ScrapeContent(ctx context.Context, url string) (*models.ScrapedContent, error)

	// Name returns the engine identifier.
	Name() string

	// Cleanup releases any resources held by the engine.
	Cleanup()

	// IsHealthy returns true if the engine is ready to process requests.
	IsHealthy() bool
}
