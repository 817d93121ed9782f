package client

import "time"

// Config controls how the SDK connects.
type Config struct {
	URL              string // base server URL, e.g. ws://localhost:4000
	Room             string // room to join
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
	}
}
