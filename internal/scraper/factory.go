package scraper

import (
	"fmt"

	"letterforge/internal/config"
	"letterforge/internal/scraper/engines/firecrawl"
	"letterforge/internal/scraper/engines/headed"
)

// Factory creates scraping engines based on the configured engine type.
type Factory struct {
	config *config.Config
}

// NewFactory creates a new engine factory.
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{config: cfg}
}

// CreateEngine creates a scraping engine. An empty name selects the
// configured default.
func (f *Factory) CreateEngine(name string) (Engine, error) {
	if name == "" || name == "auto" {
		name = f.config.Scraper.Engine
	}

	switch name {
	case "firecrawl":
		engine := firecrawl.NewEngine(f.config)
		if engine == nil {
			return nil, fmt.Errorf("failed to initialize firecrawl engine")
		}
		return engine, nil
	case "headed":
		return headed.NewEngine(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported scraper engine: %s", name)
	}
}

// GetSupportedEngines returns a list of supported engine types.
func (f *Factory) GetSupportedEngines() []string {
	return []string{"firecrawl", "headed"}
}
