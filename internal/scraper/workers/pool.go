package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"letterforge/internal/config"
	"letterforge/internal/logging"
	"letterforge/internal/scraper"
	"letterforge/pkg/models"
	"letterforge/pkg/utils"
)

// JobResult is the outcome of a single scrape job.
type JobResult struct {
	Content   *models.ScrapedContent
	Error     error
	RequestID string
	Duration  time.Duration
}

// ScrapeJob is a unit of work queued for the pool.
type ScrapeJob struct {
	ID         string
	URL        string
	Engine     string
	ResultChan chan JobResult
	Context    context.Context
	CreatedAt  time.Time
}

// PoolStats tracks worker pool statistics.
type PoolStats struct {
	mu                  sync.Mutex
	JobsQueued          int64
	JobsProcessed       int64
	JobsSuccessful      int64
	JobsFailed          int64
	TotalProcessingTime time.Duration
}

// Pool runs scrape jobs on a fixed set of worker goroutines with
// per-domain rate limiting in front of the queue.
type Pool struct {
	config      *config.Config
	jobQueue    chan ScrapeJob
	rateLimiter *RateLimiter
	factory     *scraper.Factory
	logger      logging.Logger
	wg          sync.WaitGroup
	mu          sync.Mutex
	running     bool
	quit        chan struct{}
	stats       PoolStats
}

// NewPool creates a worker pool backed by the given engine factory.
func NewPool(cfg *config.Config, factory *scraper.Factory) *Pool {
	return &Pool{
		config:      cfg,
		jobQueue:    make(chan ScrapeJob, cfg.Workers.QueueSize),
		rateLimiter: NewRateLimiter(cfg),
		factory:     factory,
		logger:      logging.GetGlobalLogger().WithField("component", "worker_pool"),
		quit:        make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return fmt.Errorf("worker pool is already running")
	}

	for i := 0; i < p.config.Workers.PoolSize; i++ {
		p.wg.Add(1)
		go p.worker(i + 1)
	}

	p.running = true
	p.logger.Info("Worker pool started", map[string]interface{}{
		"pool_size":  p.config.Workers.PoolSize,
		"queue_size": p.config.Workers.QueueSize,
	})
	return nil
}

// Stop shuts the pool down and waits for in-flight jobs to finish.
func (p *Pool) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	p.mu.Unlock()

	close(p.quit)
	p.wg.Wait()
	p.rateLimiter.Stop()

	p.logger.Info("Worker pool stopped")
	return nil
}

// IsRunning reports whether the pool accepts jobs.
func (p *Pool) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Submit queues a scrape of the given URL and blocks until a worker
// produces a result, the pool timeout elapses, or ctx is cancelled.
func (p *Pool) Submit(ctx context.Context, url, engine string) (*models.ScrapedContent, error) {
	if !p.IsRunning() {
		return nil, fmt.Errorf("worker pool is not running")
	}

	domain := extractDomainFromURL(url)
	if !p.rateLimiter.Allow(domain) {
		return nil, fmt.Errorf("rate limit exceeded for domain: %s", domain)
	}

	job := ScrapeJob{
		ID:         utils.GenerateRequestID(),
		URL:        url,
		Engine:     engine,
		ResultChan: make(chan JobResult, 1),
		Context:    ctx,
		CreatedAt:  time.Now(),
	}

	p.stats.mu.Lock()
	p.stats.JobsQueued++
	p.stats.mu.Unlock()

	select {
	case p.jobQueue <- job:
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("job queue is full, request timed out")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case result := <-job.ResultChan:
		if result.Error != nil {
			return nil, result.Error
		}
		return result.Content, nil
	case <-time.After(p.config.Workers.Timeout):
		return nil, fmt.Errorf("scrape timed out after %v", p.config.Workers.Timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() map[string]interface{} {
	p.stats.mu.Lock()
	defer p.stats.mu.Unlock()

	stats := map[string]interface{}{
		"jobs_queued":     p.stats.JobsQueued,
		"jobs_processed":  p.stats.JobsProcessed,
		"jobs_successful": p.stats.JobsSuccessful,
		"jobs_failed":     p.stats.JobsFailed,
	}
	if p.stats.JobsProcessed > 0 {
		stats["avg_processing_time"] = (p.stats.TotalProcessingTime / time.Duration(p.stats.JobsProcessed)).String()
	}
	return stats
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	logger := p.logger.WithField("worker_id", id)
	logger.Debug("Worker started")

	for {
		select {
		case job := <-p.jobQueue:
			p.processJob(logger, job)
		case <-p.quit:
			logger.Debug("Worker stopping")
			return
		}
	}
}

func (p *Pool) processJob(logger logging.Logger, job ScrapeJob) {
	startTime := time.Now()
	result := JobResult{RequestID: job.ID}

	engine, err := p.factory.CreateEngine(job.Engine)
	if err != nil {
		result.Error = fmt.Errorf("failed to create scraper engine: %w", err)
	} else {
		result.Content, result.Error = engine.ScrapeContent(job.Context, job.URL)
		engine.Cleanup()
	}

	result.Duration = time.Since(startTime)

	p.stats.mu.Lock()
	p.stats.JobsProcessed++
	p.stats.TotalProcessingTime += result.Duration
	if result.Error != nil {
		p.stats.JobsFailed++
	} else {
		p.stats.JobsSuccessful++
	}
	p.stats.mu.Unlock()

	select {
	case job.ResultChan <- result:
		logger.Info("Scrape job completed", map[string]interface{}{
			"job_id":          job.ID,
			"url":             job.URL,
			"processing_time": result.Duration.String(),
			"success":         result.Error == nil,
		})
	case <-time.After(100 * time.Millisecond):
		logger.Debug("Result channel timeout - caller may have gone away", map[string]interface{}{
			"job_id": job.ID,
		})
	}
}
