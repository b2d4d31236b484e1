package remote

import "time"

// Config holds configuration for fetching remote snapshots.
type Config struct {
	// BaseURL is the achievement server root.
	BaseURL string `mapstructure:"base_url" default:"https://retroachievements.org" validate:"required,url"`
	// TimeoutSeconds bounds a single fetch request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10" validate:"gte=1"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"achievement-manager"`
	// CacheSize is how many converted snapshots the serve mode keeps in memory.
	CacheSize int `mapstructure:"cache_size" default:"128" validate:"gte=1"`
	// CacheTTLSeconds is how long a converted snapshot stays fresh in serve mode.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300" validate:"gte=0"`
}

// Timeout returns the request timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the snapshot cache time-to-live.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
