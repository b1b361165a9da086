// Package config loads the client configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"prismslink/internal/crypto"
	"prismslink/internal/hashing"
	"prismslink/internal/logging"
)

// Server identifies the application to talk to.
type Server struct {
	URL      string // servlet URL for calls, downloads and uploads
	ImageURL string // image servlet URL; defaults to URL
	App      string
	Client   string
}

// Session holds the engine timings.
type Session struct {
	Timeout            time.Duration
	KeepAliveInterval  time.Duration
	KeepAliveThreshold time.Duration
	ConnectImmediately bool
}

// Encryption selects the cipher and the key size bound.
type Encryption struct {
	Type       crypto.Kind
	MaxKeyBits int
}

// Metrics configures the Prometheus endpoint. An empty Addr disables it.
type Metrics struct {
	Addr string
}

// Config is the complete client configuration.
type Config struct {
	Server     Server
	Session    Session
	Encryption Encryption
	Log        logging.Config
	Metrics    Metrics
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: Server{
			URL:    "http://127.0.0.1:8080/prisms",
			App:    "Manager",
			Client: "Web Client",
		},
		Session: Session{
			Timeout:            30 * time.Second,
			KeepAliveInterval:  10 * time.Second,
			KeepAliveThreshold: 29500 * time.Millisecond,
			ConnectImmediately: true,
		},
		Encryption: Encryption{
			Type:       crypto.DefaultKind,
			MaxKeyBits: hashing.DefaultMaxKeyBits,
		},
		Log: logging.DefaultConfig(),
	}
}

type fileConfig struct {
	Server struct {
		URL      string `toml:"url"`
		ImageURL string `toml:"image_url"`
		App      string `toml:"app"`
		Client   string `toml:"client"`
	} `toml:"server"`
	Session struct {
		Timeout            string `toml:"timeout"`
		KeepAliveInterval  string `toml:"keepalive_interval"`
		KeepAliveThreshold string `toml:"keepalive_threshold"`
		ConnectImmediately bool   `toml:"connect_immediately"`
	} `toml:"session"`
	Encryption struct {
		Type       string `toml:"type"`
		MaxKeyBits int    `toml:"max_key_bits"`
	} `toml:"encryption"`
	Log struct {
		Level  string `toml:"level"`
		Pretty bool   `toml:"pretty"`
	} `toml:"log"`
	Metrics struct {
		Addr string `toml:"addr"`
	} `toml:"metrics"`
}

// Load reads path over Default. Keys absent from the file keep their
// defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config: unknown keys %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("server", "url") {
		cfg.Server.URL = strings.TrimSpace(raw.Server.URL)
	}
	if meta.IsDefined("server", "image_url") {
		cfg.Server.ImageURL = strings.TrimSpace(raw.Server.ImageURL)
	}
	if meta.IsDefined("server", "app") {
		cfg.Server.App = strings.TrimSpace(raw.Server.App)
	}
	if meta.IsDefined("server", "client") {
		cfg.Server.Client = strings.TrimSpace(raw.Server.Client)
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"timeout", raw.Session.Timeout, &cfg.Session.Timeout},
		{"keepalive_interval", raw.Session.KeepAliveInterval, &cfg.Session.KeepAliveInterval},
		{"keepalive_threshold", raw.Session.KeepAliveThreshold, &cfg.Session.KeepAliveThreshold},
	}
	for _, d := range durations {
		if !meta.IsDefined("session", d.key) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return Config{}, fmt.Errorf("parse session.%s: %w", d.key, err)
		}
		*d.dst = v
	}
	if meta.IsDefined("session", "connect_immediately") {
		cfg.Session.ConnectImmediately = raw.Session.ConnectImmediately
	}

	if meta.IsDefined("encryption", "type") {
		kind, err := crypto.ParseKind(raw.Encryption.Type)
		if err != nil {
			return Config{}, fmt.Errorf("parse encryption.type: %w", err)
		}
		cfg.Encryption.Type = kind
	}
	if meta.IsDefined("encryption", "max_key_bits") {
		cfg.Encryption.MaxKeyBits = raw.Encryption.MaxKeyBits
	}

	if meta.IsDefined("log", "level") {
		lvl, ok := logging.ParseLevel(raw.Log.Level)
		if !ok {
			return Config{}, fmt.Errorf("parse log.level: unknown level %q", raw.Log.Level)
		}
		cfg.Log.Level = lvl
	}
	if meta.IsDefined("log", "pretty") {
		cfg.Log.Pretty = raw.Log.Pretty
	}

	if meta.IsDefined("metrics", "addr") {
		cfg.Metrics.Addr = strings.TrimSpace(raw.Metrics.Addr)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ImageURL returns the image servlet URL, falling back to the servlet URL.
func (c Config) ImageURL() string {
	if c.Server.ImageURL != "" {
		return c.Server.ImageURL
	}
	return c.Server.URL
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var errs []error
	if c.Server.URL == "" {
		errs = append(errs, errors.New("server.url is required"))
	} else if u, err := url.Parse(c.Server.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("server.url %q is not an absolute URL", c.Server.URL))
	}
	if c.Server.App == "" {
		errs = append(errs, errors.New("server.app is required"))
	}
	if c.Server.Client == "" {
		errs = append(errs, errors.New("server.client is required"))
	}
	if c.Session.Timeout <= 0 {
		errs = append(errs, errors.New("session.timeout must be positive"))
	}
	if c.Session.KeepAliveInterval <= 0 {
		errs = append(errs, errors.New("session.keepalive_interval must be positive"))
	}
	if c.Session.KeepAliveThreshold < c.Session.KeepAliveInterval {
		errs = append(errs, errors.New("session.keepalive_threshold must not be shorter than the interval"))
	}
	if _, err := crypto.New(c.Encryption.Type); err != nil {
		errs = append(errs, err)
	}
	if c.Encryption.MaxKeyBits <= 0 {
		errs = append(errs, errors.New("encryption.max_key_bits must be positive"))
	} else if c.Encryption.Type == crypto.KindBlowfish && c.Encryption.MaxKeyBits > crypto.BlowfishMaxKeyBits {
		errs = append(errs, fmt.Errorf("encryption.max_key_bits must not exceed %d for blowfish", crypto.BlowfishMaxKeyBits))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}
