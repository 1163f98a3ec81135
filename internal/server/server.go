// Package server serves the guide over HTTP.
package server

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"golang.org/x/sync/errgroup"

	"github.com/pthm/junitguide/internal/components"
	"github.com/pthm/junitguide/internal/config"
	"github.com/pthm/junitguide/internal/content"
	"github.com/pthm/junitguide/internal/guide"
	"github.com/pthm/junitguide/internal/hxcmp"
)

const colorSchemeHint = hxcmp.PrefersColorSchemeHeader

// Server is the guide's HTTP server.
type Server struct {
	cfg        *config.Config
	store      *content.Store
	logger     *slog.Logger
	reg        *hxcmp.Registry
	comps      *components.Components
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over store.
func New(cfg *config.Config, store *content.Store, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	key, err := signingKey(cfg.Secret)
	if err != nil {
		return nil, err
	}

	reg := hxcmp.NewRegistry(key)
	reg.Logger = logger

	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		reg:    reg,
		comps:  components.Init(store, reg),
	}
	s.router = s.buildRouter()
	return s, nil
}

// signingKey returns the configured secret, or a random key when empty.
func signingKey(secret string) ([]byte, error) {
	if secret != "" {
		return []byte(secret), nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating signing key: %w", err)
	}
	return key, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(clientHints)
		r.Get(components.PagePath, s.handlePage)
	})

	r.Get("/static/chroma.css", s.handleChromaCSS)
	r.Get("/static/guide.css", serveAsset("text/css; charset=utf-8", mustAsset("guide.css")))
	r.Get("/static/guide.js", serveAsset("text/javascript; charset=utf-8", mustAsset("guide.js")))

	r.Handle("/_c/*", s.reg.Handler())

	return r
}

// Handler returns the root handler, compressed when enabled.
func (s *Server) Handler() http.Handler {
	if s.cfg.Gzip {
		return gzhttp.GzipHandler(s.router)
	}
	return s.router
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	prefersDark, hinted := hxcmp.PrefersDark(r)
	q := r.URL.Query()
	state := guide.FromQuery(q, s.cfg.InitialDark(prefersDark, hinted))
	// Without a hint or an explicit choice the browser settles the theme.
	auto := s.cfg.Theme == config.ThemeSystem && !hinted && !q.Has(guide.QueryTheme)

	if err := hxcmp.Render(w, r, pageFor(s.comps.Shell, state, auto, nil)); err != nil {
		s.logger.ErrorContext(r.Context(), "render page", "err", err)
	}
}

// Run listens on the configured address until ctx is canceled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("junitguide listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
