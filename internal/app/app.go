package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"prismslink/internal/session"
)

// ErrSessionEnded is returned by Run when the session shut down on its own:
// the server restarted the client or became unreachable.
var ErrSessionEnded = errors.New("session ended")

// Reconnect tunables.
const (
	ReconnectInitialInterval = time.Second
	ReconnectMaxInterval     = 30 * time.Second
	ReconnectMaxElapsedTime  = 10 * time.Minute
)

// NewReconnectBackOff returns the jittered exponential backoff used between
// sessions.
func NewReconnectBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = ReconnectInitialInterval
	b.MaxInterval = ReconnectMaxInterval
	b.MaxElapsedTime = ReconnectMaxElapsedTime
	b.RandomizationFactor = 0.5
	b.Multiplier = 2.0
	b.Reset()
	return backoff.WithContext(b, ctx)
}

// Run drives e until ctx is cancelled or the session ends. With connect
// set, init is issued first. Run owns e for its duration.
func Run(ctx context.Context, e *session.Engine, connect bool) error {
	ended := make(chan struct{}, 1)
	signal := func(...any) {
		select {
		case ended <- struct{}{}:
		default:
		}
	}
	e.AddListener(session.EventShutdown, signal)
	e.AddListener(session.EventUnreachable, signal)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- e.Run(runCtx) }()

	if connect {
		if err := e.Post(runCtx, func(e *session.Engine) { e.Connect() }); err != nil {
			cancel()
			<-errc
			return err
		}
	}

	select {
	case <-ctx.Done():
		<-errc
		return ctx.Err()
	case <-ended:
		cancel()
		<-errc
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrSessionEnded
	}
}

// Supervise calls attempt until it returns an error other than
// ErrSessionEnded, waiting between attempts as bo directs. An attempt that
// ran for longer than the backoff's current interval resets it.
func Supervise(ctx context.Context, bo backoff.BackOff, log zerolog.Logger, attempt func(ctx context.Context) error) error {
	for {
		start := time.Now()
		err := attempt(ctx)
		if !errors.Is(err, ErrSessionEnded) {
			return err
		}
		if time.Since(start) > ReconnectMaxInterval {
			bo.Reset()
		}
		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("giving up reconnecting: %w", err)
		}
		log.Warn().Dur("wait", wait).Msg("session ended, reconnecting")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
