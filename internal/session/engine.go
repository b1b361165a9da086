package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"prismslink/internal/crypto"
	"prismslink/internal/domain"
	"prismslink/internal/router"
)

// Listener receives the arguments of a fired client event.
type Listener func(args ...any)

// Client events fired by the engine.
const (
	EventSessionStarted = "sessionStarted"
	EventShutdown       = "shutdown"
	EventUnreachable    = "unreachable"
)

// Option configures an Engine.
type Option func(*Engine)

// WithCipher replaces the default Blowfish cipher.
func WithCipher(c domain.Cipher) Option { return func(e *Engine) { e.cipher = c } }

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

// WithClock replaces time.Now for keep-alive bookkeeping.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithDefaultUser names the user Connect falls back to when none is held.
func WithDefaultUser(name string) Option { return func(e *Engine) { e.defaultUser = name } }

// state is everything the server can change.
type state struct {
	sessionID string
	creds     *domain.Credentials
	key       string

	// Latched by a startEncryption that had to wait for a login.
	hashing   domain.Hashing
	postLogin PostLoginAction

	postEncryption    PostEncryptionAction
	postEncryptionTag string

	started    bool
	version    domain.VersionInfo
	lastPinged time.Time
	ticker     *time.Ticker
}

// Engine is the client side of one application session.
type Engine struct {
	cfg         Config
	transport   domain.Transport
	ui          domain.UI
	cipher      domain.Cipher
	router      *router.Router
	log         zerolog.Logger
	now         func() time.Time
	defaultUser string

	st        state
	queue     []domain.Params
	ops       chan func(*Engine)
	listeners map[string][]Listener
}

// New returns an unstarted engine. Nothing is sent until Connect or a call
// is queued and flushed.
func New(cfg Config, t domain.Transport, ui domain.UI, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.New("session: transport is required")
	}
	if ui == nil {
		return nil, errors.New("session: ui is required")
	}
	if cfg.MaxKeyBits == 0 {
		cfg.MaxKeyBits = DefaultConfig().MaxKeyBits
	}

	e := &Engine{
		cfg:       cfg,
		transport: t,
		ui:        ui,
		cipher:    crypto.Blowfish{},
		log:       zerolog.Nop(),
		now:       time.Now,
		ops:       make(chan func(*Engine), 64),
		listeners: make(map[string][]Listener),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With().Str("app", cfg.App).Str("client", cfg.Client).Logger()
	e.router = router.New(e.handleControl, e.log)
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// SessionID returns the token assigned by the server, or "".
func (e *Engine) SessionID() string { return e.st.sessionID }

// UserName returns the held user name, or "".
func (e *Engine) UserName() string {
	if e.st.creds == nil {
		return ""
	}
	return e.st.creds.UserName
}

// Encrypted reports whether an encryption key is held.
func (e *Engine) Encrypted() bool { return e.st.key != "" }

// KeyFingerprint identifies the held key in logs without revealing it.
func (e *Engine) KeyFingerprint() string { return crypto.Fingerprint(e.st.key) }

// Started reports whether the server has confirmed the session with init.
func (e *Engine) Started() bool { return e.st.started }

// IsActive reports whether the keep-alive timer is running.
func (e *Engine) IsActive() bool { return e.st.ticker != nil }

// Version returns the last version reported by the server.
func (e *Engine) Version() domain.VersionInfo { return e.st.version }

// Pending returns the number of queued calls.
func (e *Engine) Pending() int { return len(e.queue) }

// Plugins returns the registered plugin names in registration order.
func (e *Engine) Plugins() []string { return e.router.Names() }

// RegisterPlugin adds p to the registry. Once the session has started the
// server is told about it with addPlugin.
func (e *Engine) RegisterPlugin(p domain.Plugin) error {
	if _, err := e.router.Register(p); err != nil {
		return err
	}
	if e.st.started {
		e.addPlugin(p.Name())
	}
	return nil
}

func (e *Engine) addPlugin(name string) {
	e.CallApp("", "addPlugin", domain.Params{"pluginToAdd": name})
}

// AddListener subscribes fn to the named client event.
func (e *Engine) AddListener(name string, fn Listener) {
	e.listeners[name] = append(e.listeners[name], fn)
}

// Fire invokes every listener subscribed to name, in subscription order.
func (e *Engine) Fire(name string, args ...any) {
	for _, fn := range e.listeners[name] {
		fn(args...)
	}
}

// Shutdown stops the keep-alive timer. It is safe to call more than once.
func (e *Engine) Shutdown() {
	if e.st.ticker == nil {
		return
	}
	e.st.ticker.Stop()
	e.st.ticker = nil
	e.log.Info().Msg("session shut down")
	e.Fire(EventShutdown)
}

// Post hands op to the goroutine running Run. It blocks while the
// operation buffer is full, so it must not be called from inside Run.
func (e *Engine) Post(ctx context.Context, op func(*Engine)) error {
	select {
	case e.ops <- op:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the engine until ctx is cancelled: it executes queued calls
// one at a time, runs posted operations between calls, and services the
// keep-alive timer while idle. Call failures are logged and do not stop
// the loop.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			e.Shutdown()
			return err
		}
		if len(e.queue) > 0 {
			select {
			case op := <-e.ops:
				op(e)
			default:
				e.reportRunError(e.step(ctx))
			}
			continue
		}
		select {
		case <-ctx.Done():
		case op := <-e.ops:
			op(e)
		case <-e.tick():
			e.keepAlive()
		}
	}
}

func (e *Engine) tick() <-chan time.Time {
	if e.st.ticker == nil {
		return nil
	}
	return e.st.ticker.C
}

func (e *Engine) reportRunError(err error) {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case errors.Is(err, domain.ErrProtocolViolation):
		e.log.Error().Err(err).Msg("server call rejected")
		e.ui.ReportError(err.Error())
	default:
		e.log.Warn().Err(err).Msg("server call failed")
	}
}

// Flush executes queued calls, including those queued by the responses,
// until the queue is empty or a call fails. The failed call is dropped and
// the rest stay queued.
func (e *Engine) Flush(ctx context.Context) error {
	for len(e.queue) > 0 {
		if err := e.step(ctx); err != nil {
			return err
		}
	}
	return nil
}
