package session

import (
	"errors"
	"fmt"
	"time"

	"prismslink/internal/hashing"
)

// Config holds the identity of the client and the session timings.
type Config struct {
	App        string // application name stamped on every request
	Client     string // client configuration name stamped on every request
	ServletURL string // base URL for download and upload sources
	ImageURL   string // base URL for image sources

	Timeout            time.Duration // bound on one round trip
	KeepAliveInterval  time.Duration // keep-alive timer period
	KeepAliveThreshold time.Duration // idle time after which a tick polls
	MaxKeyBits         int           // bound on derived keys
}

// DefaultConfig returns the timings the server is tuned for: a 30s round
// trip bound and a 10s keep-alive tick that polls after 29.5s of silence.
func DefaultConfig() Config {
	return Config{
		Timeout:            30 * time.Second,
		KeepAliveInterval:  10 * time.Second,
		KeepAliveThreshold: 29500 * time.Millisecond,
		MaxKeyBits:         hashing.DefaultMaxKeyBits,
	}
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	var errs []error
	if c.App == "" {
		errs = append(errs, errors.New("app is required"))
	}
	if c.Client == "" {
		errs = append(errs, errors.New("client is required"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.KeepAliveInterval <= 0 {
		errs = append(errs, fmt.Errorf("keep-alive interval must be positive, got %s", c.KeepAliveInterval))
	}
	if c.KeepAliveThreshold < c.KeepAliveInterval {
		errs = append(errs, fmt.Errorf("keep-alive threshold %s is shorter than the interval %s",
			c.KeepAliveThreshold, c.KeepAliveInterval))
	}
	return errors.Join(errs...)
}
