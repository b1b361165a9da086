package app

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"prismslink/internal/config"
	"prismslink/internal/crypto"
	"prismslink/internal/domain"
	"prismslink/internal/session"
	"prismslink/internal/store"
	"prismslink/internal/transport"
)

// Wire bundles the collaborators a session engine is built from.
type Wire struct {
	Settings  config.Config
	Profiles  store.Profiles
	Transport domain.Transport
	Cipher    domain.Cipher
	User      string
	Log       zerolog.Logger

	sealed     []byte
	passphrase string
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	profiles := store.NewProfileFileStore(cfg.Home)
	settings := cfg.Settings

	var user string
	var sealed []byte
	if cfg.Profile != "" {
		p, ok, err := profiles.LoadProfile(cfg.Profile)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("profile %q not found", cfg.Profile)
		}
		applyProfile(&settings, p)
		user, sealed = p.User, p.SealedPassword
	}
	if cfg.User != "" {
		user = cfg.User
		sealed = nil
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	cipher, err := crypto.New(settings.Encryption.Type)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	t := transport.NewHTTP(settings.Server.URL)
	t.Client = httpClient

	return &Wire{
		Settings:   settings,
		Profiles:   profiles,
		Transport:  t,
		Cipher:     cipher,
		User:       user,
		Log:        cfg.Logger,
		sealed:     sealed,
		passphrase: cfg.Passphrase,
	}, nil
}

func applyProfile(settings *config.Config, p domain.Profile) {
	if p.ServerURL != "" {
		settings.Server.URL = p.ServerURL
		settings.Server.ImageURL = ""
	}
	if p.App != "" {
		settings.Server.App = p.App
	}
	if p.Client != "" {
		settings.Server.Client = p.Client
	}
}

// SessionConfig returns the engine configuration for the settings.
func (w *Wire) SessionConfig() session.Config {
	return session.Config{
		App:                w.Settings.Server.App,
		Client:             w.Settings.Server.Client,
		ServletURL:         w.Settings.Server.URL,
		ImageURL:           w.Settings.ImageURL(),
		Timeout:            w.Settings.Session.Timeout,
		KeepAliveInterval:  w.Settings.Session.KeepAliveInterval,
		KeepAliveThreshold: w.Settings.Session.KeepAliveThreshold,
		MaxKeyBits:         w.Settings.Encryption.MaxKeyBits,
	}
}

// NewEngine builds an unstarted engine reporting to u.
func (w *Wire) NewEngine(u domain.UI) (*session.Engine, error) {
	return session.New(w.SessionConfig(), w.Transport, u,
		session.WithCipher(w.Cipher),
		session.WithLogger(w.Log),
		session.WithDefaultUser(w.User),
	)
}

// SavedPassword opens the profile's sealed password. It reports false when
// the profile has none or no passphrase was given.
func (w *Wire) SavedPassword() (string, bool, error) {
	if len(w.sealed) == 0 || w.passphrase == "" {
		return "", false, nil
	}
	pwd, err := w.Profiles.OpenPassword(w.passphrase, w.sealed)
	if err != nil {
		return "", false, err
	}
	defer crypto.Wipe(pwd)
	return string(pwd), true, nil
}
