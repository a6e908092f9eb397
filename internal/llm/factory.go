package llm

import (
	"fmt"

	"letterforge/internal/config"
	"letterforge/internal/llm/providers"
)

// Factory creates language model providers based on configuration.
type Factory struct {
	config *config.Config
}

// NewFactory creates a new provider factory.
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{config: cfg}
}

// CreateProvider creates the configured provider.
func (f *Factory) CreateProvider() (Provider, error) {
	return f.CreateNamedProvider(f.config.LLM.Provider)
}

// CreateNamedProvider creates a provider by name. An empty name selects
// the configured default.
func (f *Factory) CreateNamedProvider(name string) (Provider, error) {
	if name == "" {
		name = f.config.LLM.Provider
	}

	switch name {
	case "gemini":
		return providers.NewGeminiProvider(f.config), nil
	case "claude":
		return providers.NewClaudeProvider(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", name)
	}
}

// GetSupportedProviders returns a list of supported provider names.
func (f *Factory) GetSupportedProviders() []string {
	return []string{"gemini", "claude"}
}
