package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// GameTTL expires idle game snapshots; zero keeps them forever
	GameTTL time.Duration

	// MaxStatistics caps the statistics history; zero means unbounded
	MaxStatistics int64
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		GameTTL:       7 * 24 * time.Hour,
		MaxStatistics: 1000,
	}
}
