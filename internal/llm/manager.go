package llm

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"letterforge/internal/config"
	"letterforge/internal/logging"
	"letterforge/pkg/models"
)

// Manager owns the configured provider and throttles outbound model
// calls to the configured rate.
type Manager struct {
	config  *config.Config
	factory *Factory
	limiter *rate.Limiter
	logger  logging.Logger

	mu       sync.RWMutex
	provider Provider
	named    map[string]Provider
	healthy  bool
}

// NewManager creates a new manager instance.
func NewManager(cfg *config.Config) *Manager {
	// Configured limit is calls per minute
	rps := rate.Limit(float64(cfg.LLM.RateLimit) / 60.0)

	return &Manager{
		config:  cfg,
		factory: NewFactory(cfg),
		limiter: rate.NewLimiter(rps, 2),
		named:   make(map[string]Provider),
		logger:  logging.GetGlobalLogger().WithField("component", "llm_manager"),
	}
}

// Start creates the provider and probes its health. A failed probe does
// not prevent startup; analysis and generation calls will report the
// provider unavailable until a later health check passes.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Starting LLM manager", map[string]interface{}{
		"provider": m.config.LLM.Provider,
	})

	provider, err := m.factory.CreateProvider()
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}
	m.provider = provider

	ctx, cancel := context.WithTimeout(context.Background(), m.config.LLM.Timeout)
	defer cancel()

	if err := provider.IsHealthy(ctx); err != nil {
		m.logger.Warn("LLM provider health check failed - AI features will be unavailable", map[string]interface{}{
			"provider": provider.Name(),
			"error":    err.Error(),
		})
		m.healthy = false
	} else {
		m.healthy = true
		m.logger.Info("LLM manager started", map[string]interface{}{
			"provider": provider.Name(),
		})
	}
	return nil
}

// Stop shuts down the manager.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.provider = nil
	m.healthy = false
	return nil
}

// ExtractJobDetails analyzes posting text through the configured provider.
func (m *Manager) ExtractJobDetails(ctx context.Context, content, link string) (*models.JobDetails, error) {
	return m.ExtractJobDetailsUsing(ctx, "", content, link)
}

// ExtractJobDetailsUsing analyzes posting text through a named provider.
// An empty name selects the configured default.
func (m *Manager) ExtractJobDetailsUsing(ctx context.Context, providerName, content, link string) (*models.JobDetails, error) {
	provider, err := m.readyProvider(ctx, providerName)
	if err != nil {
		return nil, err
	}
	return provider.ExtractJobDetails(ctx, content, link)
}

// ComposeCoverLetter writes a cover letter through the configured provider.
func (m *Manager) ComposeCoverLetter(ctx context.Context, job *models.JobDetails, profile *models.Profile) (*models.CoverLetterResponse, error) {
	provider, err := m.readyProvider(ctx, "")
	if err != nil {
		return nil, err
	}
	return provider.ComposeCoverLetter(ctx, job, profile)
}

// readyProvider returns the provider after the rate limiter admits the
// call. A non-empty name overrides the configured default for this call.
func (m *Manager) readyProvider(ctx context.Context, name string) (Provider, error) {
	m.mu.RLock()
	provider := m.provider
	healthy := m.healthy
	m.mu.RUnlock()

	if provider == nil {
		return nil, fmt.Errorf("LLM manager not started or provider not available")
	}
	if !healthy {
		return nil, fmt.Errorf("LLM provider is not available - check API key configuration")
	}

	if name != "" && name != provider.Name() {
		override, err := m.namedProvider(name)
		if err != nil {
			return nil, err
		}
		provider = override
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}
	return provider, nil
}

// namedProvider lazily creates and caches provider overrides.
func (m *Manager) namedProvider(name string) (Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if provider, ok := m.named[name]; ok {
		return provider, nil
	}

	provider, err := m.factory.CreateNamedProvider(name)
	if err != nil {
		return nil, err
	}
	m.named[name] = provider
	return provider, nil
}

// IsHealthy reports whether the manager has a working provider.
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy && m.provider != nil
}

// ProviderName returns the name of the active provider.
func (m *Manager) ProviderName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.Name()
	}
	return "none"
}

// CheckHealth re-probes the provider and records the result.
func (m *Manager) CheckHealth(ctx context.Context) error {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return fmt.Errorf("LLM provider not available")
	}

	err := provider.IsHealthy(ctx)

	m.mu.Lock()
	m.healthy = err == nil
	m.mu.Unlock()

	return err
}
