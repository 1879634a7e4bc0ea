// Package api exposes the quality and analytics operations over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/veldrin/timesieve/internal/analytics"
	"github.com/veldrin/timesieve/internal/config"
	"github.com/veldrin/timesieve/internal/observability"
	"github.com/veldrin/timesieve/internal/quality"
)

// Server wires the services into a chi router and owns the http.Server
// lifecycle.
type Server struct {
	cfg       *config.Config
	quality   *quality.Service
	analytics *analytics.Service
	logger    *slog.Logger
	mux       *chi.Mux
	srv       *http.Server
}

// NewServer builds the router and middleware stack. The logger may be
// nil, in which case slog.Default is used.
func NewServer(cfg *config.Config, qs *quality.Service, as *analytics.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:       cfg,
		quality:   qs,
		analytics: as,
		logger:    logger,
		mux:       chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupMiddleware() {
	s.mux.Use(chimiddleware.Recoverer)
	s.mux.Use(chimiddleware.Timeout(time.Duration(s.cfg.Server.RequestTimeoutSecs) * time.Second))
	s.mux.Use(s.metricsMiddleware)
	s.mux.Use(chimiddleware.Heartbeat("/healthz"))
}

// metricsMiddleware records request counts and latency per route pattern.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		observability.RecordRequest(route, r.Method, ww.Status(), time.Since(start))
	})
}

func (s *Server) setupRoutes() {
	s.mux.Handle("/metrics", observability.Handler())

	s.mux.Route("/api/v1", func(r chi.Router) {
		r.Route("/quality", func(r chi.Router) {
			r.Get("/gaps", s.handleGaps)
			r.Get("/gaps/stats", s.handleGapStats)
			r.Get("/duplicates", s.handleDuplicates)
			r.Get("/mergeable", s.handleMergeable)
			r.Get("/orphans", s.handleOrphans)
			r.Get("/validation", s.handleValidation)
			r.Post("/recalculate", s.handleRecalculate)
			r.Post("/zero-duration", s.handleZeroDuration)
			r.Get("/report", s.handleReport)
		})
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/daily", s.handleDaily)
			r.Get("/hourly", s.handleHourly)
			r.Get("/heatmap", s.handleHeatmap)
			r.Get("/weekly", s.handleWeekly)
			r.Get("/trends", s.handleTrends)
			r.Get("/insights", s.handleInsights)
			r.Get("/summary", s.handleSummary)
		})
	})
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}
