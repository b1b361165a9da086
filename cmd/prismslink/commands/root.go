package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"prismslink/internal/config"
	"prismslink/internal/logging"
)

// EnvPassphrase supplies the profile passphrase when --passphrase is not set.
const EnvPassphrase = "PRISMSLINK_PASSPHRASE"

var (
	home       string
	configPath string
	logLevel   string
	passphrase string

	settings config.Config
)

func Execute() error {
	root := &cobra.Command{
		Use:           "prismslink",
		Short:         "Command-line client for PRISMS application servers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".prismslink")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			var err error
			if settings, err = loadSettings(); err != nil {
				return err
			}

			logging.ApplyEnv(&settings.Log)
			if logLevel != "" {
				lvl, ok := logging.ParseLevel(logLevel)
				if !ok {
					return fmt.Errorf("unknown log level %q", logLevel)
				}
				settings.Log.Level = lvl
			}
			settings.Log.Output = cmd.ErrOrStderr()
			logging.Init(settings.Log)

			if passphrase == "" {
				passphrase = os.Getenv(EnvPassphrase)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "profile dir (default ~/.prismslink)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (default <home>/config.toml if present)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting saved passwords (or $"+EnvPassphrase+")")

	root.AddCommand(connectCmd(), hashCmd(), profileCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

// loadSettings reads --config, or <home>/config.toml when it exists.
func loadSettings() (config.Config, error) {
	path := configPath
	if path == "" {
		candidate := filepath.Join(home, "config.toml")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		} else if !errors.Is(err, os.ErrNotExist) {
			return config.Config{}, err
		}
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
