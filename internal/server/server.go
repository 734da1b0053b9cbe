package server

import (
	"context"
	"net"
	"net/http"

	"github.com/anbuchelva/cams/internal/auth"
	"github.com/anbuchelva/cams/internal/config"
	"github.com/anbuchelva/cams/internal/middleware"
	"github.com/anbuchelva/cams/internal/notify"
	"github.com/anbuchelva/cams/internal/repository"
	"github.com/anbuchelva/cams/internal/scheduler"
	"github.com/anbuchelva/cams/internal/store"
)

// Server is the HTTP server plus the background notification sweep.
type Server struct {
	cfg         *config.Config
	users       *repository.Users
	projects    *repository.Projects
	notifier    *notify.Notifier
	tokens      *auth.TokenIssuer
	blobs       *store.BlobStore
	rateLimiter *middleware.RateLimiter
	server      *http.Server
	sweepCancel context.CancelFunc
}

// New wires the repositories, notifier and routes, and starts the sweep
// worker on its own goroutine.
func New(cfg *config.Config, st store.Store, blobs *store.BlobStore, mailer notify.Mailer, notifyOpts notify.Options) *Server {
	users := repository.NewUsers(st)
	projects := repository.NewProjects(st, blobs)
	notifier := notify.New(projects, users, mailer, notifyOpts)
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)

	s := &Server{
		cfg:         cfg,
		users:       users,
		projects:    projects,
		notifier:    notifier,
		tokens:      tokens,
		blobs:       blobs,
		rateLimiter: middleware.NewRateLimiter(middleware.DefaultRateLimitConfig()),
	}

	s.server = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s.routes(),
	}

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	s.sweepCancel = sweepCancel
	go scheduler.NewWorker(notifier, cfg.SweepInterval).Start(sweepCtx)

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Serve starts the HTTP server on the given listener.
func (s *Server) Serve(l net.Listener) error {
	return s.server.Serve(l)
}

// Shutdown stops the sweep worker and drains inflight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.sweepCancel != nil {
		s.sweepCancel()
	}
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	return s.server.Shutdown(ctx)
}
