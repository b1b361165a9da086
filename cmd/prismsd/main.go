package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"prismslink/internal/crypto"
	"prismslink/internal/domain"
	"prismslink/internal/logging"
	"prismslink/internal/stubserver"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr     string
		app      string
		users    []string
		logLevel string
		pretty   bool
		cipher   string
		tick     time.Duration
	)
	cmd := &cobra.Command{
		Use:           "prismsd",
		Short:         "In-memory PRISMS servlet for local testing",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logCfg := logging.DefaultConfig()
			logging.ApplyEnv(&logCfg)
			if logLevel != "" {
				lvl, ok := logging.ParseLevel(logLevel)
				if !ok {
					return fmt.Errorf("unknown log level %q", logLevel)
				}
				logCfg.Level = lvl
			}
			logCfg.Pretty = logCfg.Pretty || pretty
			log := logging.Init(logCfg)

			accounts, err := parseUsers(users)
			if err != nil {
				return err
			}
			kind, err := crypto.ParseKind(cipher)
			if err != nil {
				return err
			}
			c, err := crypto.New(kind)
			if err != nil {
				return err
			}

			srv := stubserver.New(stubserver.Config{
				App:    app,
				Users:  accounts,
				Cipher: c,
				Logger: log,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.Start(addr) }()
			if tick > 0 {
				go pushTicks(ctx, srv, tick)
			}

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			log.Info().Msg("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(sctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&app, "app", "Manager", "application name reported to clients")
	cmd.Flags().StringArrayVar(&users, "user", nil, "account as name=password (repeatable)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "human-readable log output")
	cmd.Flags().StringVar(&cipher, "cipher", "blowfish", "cipher: blowfish, aes or plain")
	cmd.Flags().DurationVar(&tick, "tick", 0, "push an echo tick event to every session on this interval")
	return cmd
}

// parseUsers turns name=password pairs into an account map.
func parseUsers(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, pwd, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("bad --user %q: want name=password", p)
		}
		out[name] = pwd
	}
	return out, nil
}

func pushTicks(ctx context.Context, srv *stubserver.Server, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			for _, id := range srv.Sessions() {
				srv.Push(id, domain.Event{
					"plugin": "echo",
					"method": "tick",
					"n":      n,
					"time":   now.Unix(),
				})
			}
		}
	}
}
