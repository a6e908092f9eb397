package headed

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"letterforge/internal/config"
	"letterforge/internal/logging"
	"letterforge/internal/scraper/captcha"
	"letterforge/pkg/models"
)

// Engine scrapes job posting pages with a real browser for postings that
// block plain HTTP fetches. Pages are opened in stealth mode; captcha
// challenges are detected and handed to the configured solver.
type Engine struct {
	config   *config.Config
	launcher *launcher.Launcher
	browser  *rod.Browser
	solver   captcha.Solver
	mu       sync.Mutex
	logger   logging.Logger
}

// NewEngine creates a new headed browser engine. The browser launches
// lazily on the first scrape.
func NewEngine(cfg *config.Config) *Engine {
	l := launcher.New().
		Headless(cfg.Scraper.HeadlessMode).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	if cfg.Scraper.UserAgent != "" {
		l = l.Set("user-agent", cfg.Scraper.UserAgent)
	}

	return &Engine{
		config:   cfg,
		launcher: l,
		solver:   captcha.NewTwoCaptchaSolver(cfg),
		logger:   logging.GetGlobalLogger().WithField("component", "headed_engine"),
	}
}

// ScrapeContent fetches the page behind the given URL with a stealth
// browser page and returns its HTML.
func (e *Engine) ScrapeContent(ctx context.Context, url string) (*models.ScrapedContent, error) {
	browser, err := e.getBrowser()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, fmt.Errorf("failed to create stealth page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(e.config.Scraper.RequestTimeout)

	if err := page.Navigate(url); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("page load failed for %s: %w", url, err)
	}

	// Give late-rendering job boards a moment to paint the posting
	time.Sleep(2 * time.Second)

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read page HTML: %w", err)
	}

	if siteKey := detectRecaptcha(html); siteKey != "" {
		e.logger.Info("Captcha challenge detected", map[string]interface{}{
			"url":      url,
			"site_key": siteKey,
		})

		token, solveErr := e.solver.SolveRecaptcha(ctx, siteKey, url)
		if solveErr != nil {
			return nil, fmt.Errorf("captcha challenge could not be solved: %w", solveErr)
		}

		if _, evalErr := page.Eval(`(token) => {
			const field = document.getElementById('g-recaptcha-response');
			if (field) { field.innerHTML = token; }
		}`, token); evalErr != nil {
			return nil, fmt.Errorf("failed to inject captcha token: %w", evalErr)
		}

		if err := page.WaitLoad(); err == nil {
			if refreshed, htmlErr := page.HTML(); htmlErr == nil {
				html = refreshed
			}
		}
	}

	e.logger.Info("Successfully scraped page", map[string]interface{}{
		"content_length": len(html),
		"url":            url,
	})

	return &models.ScrapedContent{Text: html, Format: models.ContentFormatHTML}, nil
}

// Name returns the engine identifier.
func (e *Engine) Name() string {
	return "headed"
}

// Cleanup closes the browser.
func (e *Engine) Cleanup() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser != nil {
		if err := e.browser.Close(); err != nil {
			e.logger.Warn("Failed to close browser", map[string]interface{}{
				"error": err.Error(),
			})
		}
		e.browser = nil
	}
}

// IsHealthy returns true if the engine can serve requests.
func (e *Engine) IsHealthy() bool {
	return true
}

// getBrowser launches the shared browser on first use.
func (e *Engine) getBrowser() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser != nil {
		return e.browser, nil
	}

	controlURL, err := e.launcher.Launch()
	if err != nil {
		return nil, err
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, err
	}

	e.browser = browser
	e.logger.Info("Browser launched", map[string]interface{}{
		"headless": e.config.Scraper.HeadlessMode,
		"stealth":  e.config.Scraper.StealthMode,
	})
	return browser, nil
}

// detectRecaptcha pulls a reCAPTCHA site key out of the page, if present.
func detectRecaptcha(html string) string {
	idx := strings.Index(html, "data-sitekey=\"")
	if idx < 0 || !strings.Contains(html, "g-recaptcha") {
		return ""
	}
	rest := html[idx+len("data-sitekey=\""):]
	end := strings.IndexByte(rest, '"')
	if end <= 0 {
		return ""
	}
	return rest[:end]
}
