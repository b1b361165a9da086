package app

import (
	"net/http"

	"github.com/rs/zerolog"

	"prismslink/internal/config"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string        // profile directory, e.g. $HOME/.prismslink
	Settings   config.Config // loaded configuration file or defaults
	Profile    string        // optional saved profile to apply
	User       string        // overrides the profile's user
	Passphrase string        // opens the profile's sealed password
	HTTP       *http.Client  // optional; defaults to a fresh client
	Logger     zerolog.Logger
}
