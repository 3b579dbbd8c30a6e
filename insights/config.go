package insights

// Config tunes admission and retention.
type Config struct {
	// MinConfidence is the lowest admissible confidence grade.
	MinConfidence Confidence `json:"min_confidence,omitempty" yaml:"min_confidence,omitempty"`
	// MinRelevance is the lowest admissible relevance (1-10).
	MinRelevance int `json:"min_relevance,omitempty" yaml:"min_relevance,omitempty"`
	// MaxPerType caps retained insights within each type.
	MaxPerType int `json:"max_per_type,omitempty" yaml:"max_per_type,omitempty"`
	// ContextWindowDays is informational only; eviction does not consider
	// insight age.
	ContextWindowDays int `json:"context_window_days,omitempty" yaml:"context_window_days,omitempty"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		MinConfidence:     ConfidenceMedium,
		MinRelevance:      5,
		MaxPerType:        10,
		ContextWindowDays: 30,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.MinConfidence != "" {
		c.MinConfidence = source.MinConfidence
	}
	if source.MinRelevance > 0 {
		c.MinRelevance = source.MinRelevance
	}
	if source.MaxPerType > 0 {
		c.MaxPerType = source.MaxPerType
	}
	if source.ContextWindowDays > 0 {
		c.ContextWindowDays = source.ContextWindowDays
	}
}
