// Package api serves the read-only HTTP API and map visualization over
// the gold warehouse tables, plus the pipeline trigger endpoint.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/carmsdata/carmsdw/internal/warehouse"
	"github.com/carmsdata/carmsdw/pkg/core"
	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

// Runner triggers a full pipeline run.
type Runner interface {
	Run(ctx context.Context) (*core.Run, []core.StageResult, error)
}

// Config holds configuration for the API server.
type Config struct {
	Store  *warehouse.Store
	Runner Runner
	Port   int

	// APIKey enables the X-API-Key guard when non-empty.
	APIKey string

	// Rate limiting; requests <= 0 disables the limiter.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Watch re-runs the pipeline when a file under WatchDir changes.
	Watch    bool
	WatchDir string

	Logger *slog.Logger
}

// Server is the carmsdw API server.
type Server struct {
	store    *warehouse.Store
	runner   Runner
	port     int
	apiKey   string
	limiter  *RateLimiter
	watch    bool
	watchDir string
	logger   *slog.Logger
}

// NewServer creates a new API server instance.
// If cfg.Logger is nil, a discard logger is used.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		store:    cfg.Store,
		runner:   cfg.Runner,
		port:     cfg.Port,
		apiKey:   cfg.APIKey,
		limiter:  NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		watch:    cfg.Watch,
		watchDir: cfg.WatchDir,
		logger:   logger,
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
		s.limiter.Middleware,
		s.requireAPIKey,
	)

	r.Get("/health", s.handleHealth)
	r.Get("/programs", s.handleListPrograms)
	r.Get("/programs/{programStreamID}", s.handleGetProgram)
	r.Get("/disciplines", s.handleListDisciplines)
	r.Get("/map", s.handleMapPage)
	r.Get("/map/data.json", s.handleMapData)
	r.Post("/pipeline/run", s.handlePipelineRun)

	return r
}

// Serve starts the API server and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting API server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.watchSources(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchSources re-runs the pipeline when source files change, debounced
// so a burst of writes triggers one run.
func (s *Server) watchSources(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.watchDir); err != nil {
		s.logger.Error("failed to watch source directory", "dir", s.watchDir, "error", err)
		// Don't fail - continue without watching
		<-ctx.Done()
		return nil
	}

	var debounce *time.Timer
	trigger := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(500*time.Millisecond, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "error", err)
		case <-trigger:
			s.logger.Info("source files changed, re-running pipeline")
			if _, _, err := s.runner.Run(ctx); err != nil {
				s.logger.Error("watch-triggered pipeline run failed", "error", err)
			}
		}
	}
}
