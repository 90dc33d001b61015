package cache

import "time"

// Config holds configuration for caching and shared counters.
type Config struct {
	// CatalogTTLSeconds is how long a catalog snapshot serves needs reports.
	// Zero reloads the catalog on every request.
	CatalogTTLSeconds int `mapstructure:"catalog_ttl_seconds" default:"30"`
	// RedisURL enables Redis as the rate limiter store (e.g. redis://localhost:6379/0).
	// Empty keeps limiter counters in memory.
	RedisURL string `mapstructure:"redis_url" default:""`
	// KeyPrefix namespaces every key written to Redis.
	KeyPrefix string `mapstructure:"key_prefix" default:"merch:"`
}

// CatalogTTL returns the snapshot lifetime.
func (c Config) CatalogTTL() time.Duration {
	if c.CatalogTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CatalogTTLSeconds) * time.Second
}

// RedisEnabled reports whether a Redis URL is configured.
func (c Config) RedisEnabled() bool {
	return c.RedisURL != ""
}
