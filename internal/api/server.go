// Package api exposes the engine cycle model over HTTP: point queries,
// full-cycle samples, CSV export, performance metrics and a Prometheus
// endpoint.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/engine-cycle/internal/engine"
)

// Server serves one engine. Queries take a read lock; configuration
// updates take the write lock, so readers never see a partial update.
type Server struct {
	mu      sync.RWMutex
	engine  *engine.Engine
	base    engine.Config
	metrics *Collector
	router  *mux.Router
	logger  *log.Logger
	addr    string
}

// NewServer creates a server for e listening on addr. A default logger is
// used if logger is nil.
func NewServer(e *engine.Engine, addr string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "enginecycle-api",
		})
	}

	s := &Server{
		engine:  e,
		base:    e.Config(),
		metrics: NewCollector(),
		logger:  logger,
		addr:    addr,
	}
	s.metrics.Observe(e)
	s.routes()
	return s
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(s.logRequests, corsHeaders)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/config", s.getConfig).Methods(http.MethodGet)
	api.HandleFunc("/config", s.patchConfig).Methods(http.MethodPatch, http.MethodOptions)
	api.HandleFunc("/config/reset", s.resetConfig).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/models", s.getModels).Methods(http.MethodGet)
	api.HandleFunc("/volume/{theta}", s.getVolume).Methods(http.MethodGet)
	api.HandleFunc("/pressure/{theta}", s.getPressure).Methods(http.MethodGet)
	api.HandleFunc("/state/{theta}", s.getState).Methods(http.MethodGet)
	api.HandleFunc("/cycle", s.getCycle).Methods(http.MethodGet)
	api.HandleFunc("/cycle.csv", s.getCycleCSV).Methods(http.MethodGet)
	api.HandleFunc("/performance", s.getPerformance).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.router = r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", rec.code,
			"duration", time.Since(start),
		)
	})
}

func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PATCH, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
