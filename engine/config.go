package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cabinet-advisory/core/insights"
	"github.com/cabinet-advisory/core/provider"
	"github.com/cabinet-advisory/core/store"
)

const defaultObserver = "slog"

// Config holds initialization parameters for all engine subsystems.
// Each section delegates to that subsystem's config-driven constructor.
type Config struct {
	Provider  provider.Config          `json:"provider" yaml:"provider"`
	Retrieval provider.RetrievalConfig `json:"retrieval" yaml:"retrieval"`
	Insights  insights.Config          `json:"insights" yaml:"insights"`
	Store     store.Config             `json:"store" yaml:"store"`
	// Observer names a registered observer; see observability.RegisterObserver.
	Observer string `json:"observer,omitempty" yaml:"observer,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Provider:  provider.DefaultConfig(),
		Retrieval: provider.DefaultRetrievalConfig(),
		Insights:  insights.DefaultConfig(),
		Store:     store.DefaultConfig(),
		Observer:  defaultObserver,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Provider.Merge(&source.Provider)
	c.Retrieval.Merge(&source.Retrieval)
	c.Insights.Merge(&source.Insights)
	c.Store.Merge(&source.Store)

	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// LoadConfig reads a config file, merges it with defaults, and returns the
// resulting Config. The format is chosen by extension: .yaml and .yml are
// parsed as YAML, everything else as JSON.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
