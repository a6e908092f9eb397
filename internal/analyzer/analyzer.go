package analyzer

import (
	"context"
	"time"

	"letterforge/internal/llm"
	"letterforge/internal/llm/processors"
	"letterforge/internal/logging"
	"letterforge/internal/scraper/workers"
	"letterforge/pkg/models"
	"letterforge/pkg/utils"
)

// Analyzer turns a job link into structured job details: scrape the
// page, clean it, and run the extraction model over the text. Every
// failure on the way collapses into a single analysis error; callers do
// not distinguish a scrape failure from a model failure.
type Analyzer struct {
	pool       *workers.Pool
	llmManager *llm.Manager
	cleaner    *processors.HTMLCleaner
	logger     logging.Logger
}

// New creates an analyzer on top of the scrape pool and LLM manager.
func New(pool *workers.Pool, llmManager *llm.Manager) *Analyzer {
	return &Analyzer{
		pool:       pool,
		llmManager: llmManager,
		cleaner:    processors.NewHTMLCleaner(),
		logger:     logging.GetGlobalLogger().WithField("component", "analyzer"),
	}
}

// Analyze scrapes the job link and extracts structured details from it.
func (a *Analyzer) Analyze(ctx context.Context, link string, opts *models.AnalyzeOptions) (*models.JobDetails, error) {
	startTime := time.Now()

	engine := ""
	provider := ""
	if opts != nil {
		engine = opts.Engine
		provider = opts.LLMProvider
	}
	content, err := a.pool.Submit(ctx, link, engine)
	if err != nil {
		a.logger.Warn("Scrape failed during analysis", map[string]interface{}{
			"link":  link,
			"error": err.Error(),
		})
		return nil, utils.NewAnalysisError(err.Error())
	}

	text := content.Text
	if content.Format == models.ContentFormatHTML {
		cleaned, cleanErr := a.cleaner.ExtractJobContent(text)
		if cleanErr != nil {
			return nil, utils.NewAnalysisError(cleanErr.Error())
		}
		text = cleaned
	}

	if text == "" {
		return nil, utils.NewAnalysisError("scraped page contained no usable text")
	}

	job, err := a.llmManager.ExtractJobDetailsUsing(ctx, provider, text, link)
	if err != nil {
		a.logger.Warn("Job detail extraction failed", map[string]interface{}{
			"link":  link,
			"error": err.Error(),
		})
		return nil, utils.NewAnalysisError(err.Error())
	}

	a.logger.Info("Job link analyzed", map[string]interface{}{
		"link":            link,
		"job_title":       job.Title,
		"company":         job.Company,
		"processing_time": time.Since(startTime).String(),
	})
	return job, nil
}
