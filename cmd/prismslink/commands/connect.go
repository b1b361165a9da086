package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"prismslink/internal/app"
	"prismslink/internal/logging"
	"prismslink/internal/metrics"
	"prismslink/internal/session"
	"prismslink/internal/ui"
)

type pluginCall struct{ plugin, method string }

func parseCalls(raw []string) ([]pluginCall, error) {
	calls := make([]pluginCall, 0, len(raw))
	for _, r := range raw {
		plugin, method, ok := strings.Cut(r, ":")
		if !ok || method == "" {
			return nil, fmt.Errorf("invalid --call %q, want plugin:method", r)
		}
		calls = append(calls, pluginCall{plugin: plugin, method: method})
	}
	return calls, nil
}

func connectCmd() *cobra.Command {
	var (
		profile     string
		user        string
		callFlags   []string
		plugins     []string
		noReconnect bool
	)
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Open a session and stay connected until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			calls, err := parseCalls(callFlags)
			if err != nil {
				return err
			}
			for _, c := range calls {
				if c.plugin != "" {
					plugins = append(plugins, c.plugin)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			// A second interrupt kills the process even while a prompt blocks.
			go func() {
				<-ctx.Done()
				stop()
			}()

			log := logging.Component("session")
			if settings.Metrics.Addr != "" {
				go serveMetrics(ctx, settings.Metrics.Addr, log)
			}

			w, err := app.NewWire(app.Config{
				Home:       home,
				Settings:   settings,
				Profile:    profile,
				User:       user,
				Passphrase: passphrase,
				Logger:     log,
			})
			if err != nil {
				return err
			}
			savedPwd, hasSaved, err := w.SavedPassword()
			if err != nil {
				return fmt.Errorf("open saved password: %w", err)
			}

			out := cmd.OutOrStdout()
			term := ui.NewTerminal(w.Settings.Server.App, os.Stdin, out)
			if !settings.Session.ConnectImmediately {
				if _, err := term.ReadLine("Press Enter to connect"); err != nil {
					return err
				}
			}

			attempt := func(ctx context.Context) error {
				actx, cancel := context.WithCancel(ctx)
				defer cancel()

				e, err := w.NewEngine(term)
				if err != nil {
					return err
				}
				term.Bind(e)
				if hasSaved {
					term.Preset(w.User, savedPwd)
				}
				var aborted error
				term.OnAbort = func(err error) {
					aborted = err
					cancel()
				}
				term.OnReload = func(msg string) {
					log.Info().Str("message", msg).Msg("server requested a reload")
				}

				seen := map[string]bool{}
				for _, name := range plugins {
					if seen[name] {
						continue
					}
					seen[name] = true
					if err := e.RegisterPlugin(ui.NewConsole(name, out)); err != nil {
						return err
					}
				}
				called := false
				e.AddListener(session.EventSessionStarted, func(...any) {
					if called {
						return
					}
					called = true
					for _, c := range calls {
						e.CallApp(c.plugin, c.method, nil)
					}
				})

				err = app.Run(actx, e, true)
				if aborted != nil {
					return aborted
				}
				return err
			}

			if noReconnect {
				err = attempt(ctx)
			} else {
				err = app.Supervise(ctx, app.NewReconnectBackOff(ctx), log, attempt)
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "saved profile to connect with")
	cmd.Flags().StringVar(&user, "user", "", "user name (overrides the profile)")
	cmd.Flags().StringArrayVar(&callFlags, "call", nil, "plugin:method to call once the session starts (repeatable)")
	cmd.Flags().StringArrayVar(&plugins, "plugin", nil, "plugin whose events are printed (repeatable)")
	cmd.Flags().BoolVar(&noReconnect, "no-reconnect", false, "exit when the session ends")
	return cmd
}

// serveMetrics exposes Prometheus metrics until ctx is done.
func serveMetrics(ctx context.Context, addr string, log zerolog.Logger) {
	metrics.Register()
	srv := &http.Server{Addr: addr, Handler: metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("metrics server stopped")
	}
}
