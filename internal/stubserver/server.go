package stubserver

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"prismslink/internal/crypto"
	"prismslink/internal/domain"
	"prismslink/internal/hashing"
)

// ServletPath is where the server accepts calls.
const ServletPath = "/prisms"

// DefaultHashing is handed to clients when Config.Hashing is empty.
var DefaultHashing = domain.Hashing{
	PrimaryMultiples:   []int64{31, 37, 41},
	PrimaryModulos:     []int64{1000003, 999983, 2147483647},
	SecondaryMultiples: []int64{17, 2147483629},
	SecondaryModulos:   []int64{1000033, 2147483587},
}

// Config describes the application the server pretends to be.
type Config struct {
	App        string
	Users      map[string]string // user name to password
	Hashing    domain.Hashing
	Cipher     domain.Cipher
	MaxKeyBits int
	Version    domain.VersionInfo
	Logger     zerolog.Logger
}

// Server holds the sessions and the HTTP routes.
type Server struct {
	cfg    Config
	router *chi.Mux
	log    zerolog.Logger
	newID  func() string

	mu       sync.Mutex
	sessions map[string]*session
	httpSrv  *http.Server
}

// New returns a server for cfg.
func New(cfg Config) *Server {
	if cfg.App == "" {
		cfg.App = "Manager"
	}
	if cfg.Hashing.IsZero() {
		cfg.Hashing = DefaultHashing
	}
	if cfg.Cipher == nil {
		cfg.Cipher = crypto.Blowfish{}
	}
	if cfg.MaxKeyBits == 0 {
		cfg.MaxKeyBits = hashing.DefaultMaxKeyBits
	}
	if cfg.Version.Version == nil {
		cfg.Version = domain.VersionInfo{Version: []int64{1, 0, 0}, Modified: time.Now().Unix()}
	}

	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		log:      cfg.Logger,
		newID:    uuid.NewString,
		sessions: make(map[string]*session),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Post(ServletPath, s.serveCall)
	s.router.Get(ServletPath, s.serveSource)
}

// requestLogger logs each request with its ID, status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("verb", r.Method).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.mu.Lock()
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpSrv
	s.mu.Unlock()

	s.log.Info().Str("addr", addr).Str("app", s.cfg.App).Msg("listening")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops a server started with Start.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpSrv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Push queues ev for the session's next getEvents poll. It reports false
// when no such session exists.
func (s *Server) Push(sessionID string, ev domain.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	sess.pending = append(sess.pending, ev)
	return true
}

// Sessions returns the IDs of the live sessions.
func (s *Server) Sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Expire drops a session so its next call is told to restart.
func (s *Server) Expire(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.expired = true
	}
}
