package captcha

import (
	"context"
	"fmt"
	"time"

	api2captcha "github.com/2captcha/2captcha-go"

	"letterforge/internal/config"
	"letterforge/internal/logging"
)

// Solver solves captcha challenges encountered while scraping job boards.
type Solver interface {
	SolveRecaptcha(ctx context.Context, siteKey, pageURL string) (string, error)
	SolveTurnstile(ctx context.Context, siteKey, pageURL string) (string, error)
	IsHealthy() bool
}

// TwoCaptchaSolver integrates the 2CAPTCHA service through its official
// client library.
type TwoCaptchaSolver struct {
	config *config.Config
	client *api2captcha.Client
	logger logging.Logger
}

// NewTwoCaptchaSolver creates a 2CAPTCHA solver instance.
func NewTwoCaptchaSolver(cfg *config.Config) *TwoCaptchaSolver {
	logger := logging.GetGlobalLogger().WithField("component", "2captcha")

	if cfg.Scraper.Captcha.APIKey == "" {
		logger.Warn("2CAPTCHA API key not configured - captcha solving will be disabled")
	}

	client := api2captcha.NewClient(cfg.Scraper.Captcha.APIKey)
	client.DefaultTimeout = int(cfg.Scraper.Captcha.Timeout.Seconds())
	client.RecaptchaTimeout = int(cfg.Scraper.Captcha.Timeout.Seconds())
	client.PollingInterval = 5

	return &TwoCaptchaSolver{
		config: cfg,
		client: client,
		logger: logger,
	}
}

// SolveRecaptcha solves a reCAPTCHA v2 challenge and returns the response
// token.
func (tcs *TwoCaptchaSolver) SolveRecaptcha(ctx context.Context, siteKey, pageURL string) (string, error) {
	if err := tcs.checkEnabled(); err != nil {
		return "", err
	}

	startTime := time.Now()
	captcha := api2captcha.ReCaptcha{
		SiteKey: siteKey,
		Url:     pageURL,
	}

	code, _, err := tcs.client.Solve(captcha.ToRequest())
	if err != nil {
		tcs.logger.Error("Failed to solve reCAPTCHA", map[string]interface{}{
			"site_key": siteKey,
			"page_url": pageURL,
			"error":    err.Error(),
		})
		return "", fmt.Errorf("failed to solve reCAPTCHA: %w", err)
	}

	tcs.logger.Info("Successfully solved reCAPTCHA", map[string]interface{}{
		"page_url":     pageURL,
		"solving_time": time.Since(startTime).String(),
	})
	return code, nil
}

// SolveTurnstile solves a Cloudflare Turnstile challenge and returns the
// response token.
func (tcs *TwoCaptchaSolver) SolveTurnstile(ctx context.Context, siteKey, pageURL string) (string, error) {
	if err := tcs.checkEnabled(); err != nil {
		return "", err
	}

	startTime := time.Now()
	captcha := api2captcha.CloudflareTurnstile{
		SiteKey: siteKey,
		Url:     pageURL,
	}

	code, _, err := tcs.client.Solve(captcha.ToRequest())
	if err != nil {
		tcs.logger.Error("Failed to solve Turnstile challenge", map[string]interface{}{
			"site_key": siteKey,
			"page_url": pageURL,
			"error":    err.Error(),
		})
		return "", fmt.Errorf("failed to solve Turnstile challenge: %w", err)
	}

	tcs.logger.Info("Successfully solved Turnstile challenge", map[string]interface{}{
		"page_url":     pageURL,
		"solving_time": time.Since(startTime).String(),
	})
	return code, nil
}

// IsHealthy verifies the API key by checking the account balance.
func (tcs *TwoCaptchaSolver) IsHealthy() bool {
	if tcs.config.Scraper.Captcha.APIKey == "" {
		return false
	}

	balance, err := tcs.client.GetBalance()
	if err != nil {
		tcs.logger.Error("2CAPTCHA health check failed", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}
	return balance >= 0
}

func (tcs *TwoCaptchaSolver) checkEnabled() error {
	if !tcs.config.Scraper.Captcha.EnableAutoSolve {
		return fmt.Errorf("captcha auto-solve is disabled")
	}
	if tcs.config.Scraper.Captcha.APIKey == "" {
		return fmt.Errorf("2CAPTCHA API key not configured")
	}
	return nil
}
