package provider

import "time"

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 60 * time.Second
	defaultRetries = 3
)

// Config holds completion client initialization parameters.
type Config struct {
	BaseURL    string        `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey     string        `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Model      string        `json:"model,omitempty" yaml:"model,omitempty"`
	Timeout    time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	MaxRetries int           `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
}

// DefaultConfig returns the default completion client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:    defaultBaseURL,
		Model:      defaultModel,
		Timeout:    defaultTimeout,
		MaxRetries: defaultRetries,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
	if source.MaxRetries > 0 {
		c.MaxRetries = source.MaxRetries
	}
}

// RetrievalConfig holds retrieval client initialization parameters. An empty
// BaseURL disables retrieval; agents then skip news enrichment.
type RetrievalConfig struct {
	BaseURL string        `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey  string        `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultRetrievalConfig returns the default retrieval configuration
// (disabled).
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{Timeout: defaultTimeout}
}

// Merge applies non-zero values from source into c.
func (c *RetrievalConfig) Merge(source *RetrievalConfig) {
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
}
