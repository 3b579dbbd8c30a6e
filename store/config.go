package store

import "github.com/redis/go-redis/v9"

// Config holds snapshot store initialization parameters. An empty config
// disables persistence.
type Config struct {
	// Path is the fileStore root directory. Mutually exclusive with Redis.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// RedisAddr enables the Redis backend when set (host:port).
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	// RedisPrefix namespaces keys in Redis. Defaults to "cabinet".
	RedisPrefix string `json:"redis_prefix,omitempty" yaml:"redis_prefix,omitempty"`
}

// DefaultConfig returns the default store configuration (disabled).
func DefaultConfig() Config {
	return Config{RedisPrefix: "cabinet"}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
	if source.RedisAddr != "" {
		c.RedisAddr = source.RedisAddr
	}
	if source.RedisPrefix != "" {
		c.RedisPrefix = source.RedisPrefix
	}
}

// New creates a Store from configuration. Returns nil when persistence is
// disabled; callers then skip snapshot export.
func New(cfg Config) (Store, error) {
	merged := DefaultConfig()
	merged.Merge(&cfg)

	switch {
	case merged.RedisAddr != "":
		return NewRedisStore(&redis.Options{Addr: merged.RedisAddr}, merged.RedisPrefix)
	case merged.Path != "":
		return NewFileStore(merged.Path), nil
	default:
		return nil, nil
	}
}
