package firecrawl

import (
	"context"
	"fmt"
	"time"

	"github.com/mendableai/firecrawl-go"

	"letterforge/internal/config"
	"letterforge/internal/logging"
	"letterforge/pkg/models"
)

// Engine scrapes job posting pages through the Firecrawl API, returning
// markdown ready for language model consumption.
type Engine struct {
	config *config.Config
	app    *firecrawl.FirecrawlApp
	logger logging.Logger
}

// NewEngine creates a new Firecrawl engine instance.
func NewEngine(cfg *config.Config) *Engine {
	logger := logging.GetGlobalLogger()

	app, err := firecrawl.NewFirecrawlApp(
		cfg.Firecrawl.APIKey,
		cfg.Firecrawl.APIURL,
	)
	if err != nil {
		logger.Error("Failed to initialize Firecrawl", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	logger.Info("Firecrawl engine initialized", map[string]interface{}{
		"api_url": cfg.Firecrawl.APIURL,
	})

	return &Engine{
		config: cfg,
		app:    app,
		logger: logger,
	}
}

// ScrapeContent fetches the page behind the given URL via Firecrawl with
// retry. Markdown is preferred; raw HTML is returned when that is all the
// API produced.
func (e *Engine) ScrapeContent(ctx context.Context, url string) (*models.ScrapedContent, error) {
	scrapeParams := &firecrawl.ScrapeParams{
		Formats: e.config.Firecrawl.Formats,
	}

	var result *firecrawl.FirecrawlDocument
	var err error

	for attempt := 1; attempt <= e.config.Scraper.MaxRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		e.logger.Debug("Firecrawl scrape attempt", map[string]interface{}{
			"attempt":     attempt,
			"max_retries": e.config.Scraper.MaxRetries,
			"url":         url,
		})

		result, err = e.app.ScrapeURL(url, scrapeParams)
		if err == nil {
			break
		}

		e.logger.Warn("Firecrawl scrape attempt failed", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})

		if attempt < e.config.Scraper.MaxRetries {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("firecrawl scraping failed after %d attempts: %w", e.config.Scraper.MaxRetries, err)
	}

	if result == nil {
		return nil, fmt.Errorf("no result returned from Firecrawl")
	}

	var content *models.ScrapedContent
	switch {
	case result.Markdown != "":
		content = &models.ScrapedContent{Text: result.Markdown, Format: models.ContentFormatMarkdown}
	case result.HTML != "":
		content = &models.ScrapedContent{Text: result.HTML, Format: models.ContentFormatHTML}
	default:
		return nil, fmt.Errorf("no content found in Firecrawl response")
	}

	e.logger.Info("Successfully scraped content", map[string]interface{}{
		"content_length": len(content.Text),
		"format":         content.Format,
		"url":            url,
	})
	return content, nil
}

// Name returns the engine identifier.
func (e *Engine) Name() string {
	return "firecrawl"
}

// Cleanup releases resources (the Firecrawl SDK needs no explicit cleanup).
func (e *Engine) Cleanup() {}

// IsHealthy returns true if the engine is ready to process requests.
func (e *Engine) IsHealthy() bool {
	return e.app != nil && e.config.Firecrawl.APIKey != ""
}
