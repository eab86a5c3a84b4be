// Package server exposes saved benchmark results and rendered plots over
// HTTP so they can be browsed while a benchmark campaign is running.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/copyleftdev/optbench/internal/benchmark"
	"github.com/copyleftdev/optbench/internal/config"
	"github.com/copyleftdev/optbench/internal/errors"
	"github.com/copyleftdev/optbench/internal/logging"
)

// Server serves the results and plots directories produced by the run and
// plot commands.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
}

// New creates a server over the configured directories.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{cfg: cfg, logger: logger}
}

// Router builds the HTTP routes with the standard middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.logger))
	r.Use(errors.RecoveryMiddleware(s.logger))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/results", s.handleListResults)
		r.Get("/results/{name}", s.handleGetResult)
	})
	r.Get("/plots/{name}", s.handleGetPlot)

	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.HTTP.Port),
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
		IdleTimeout:  s.cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.cfg.ResultsDir)
	if err != nil {
		if os.IsNotExist(err) {
			s.respondJSON(w, map[string]interface{}{"results": []string{}})
			return
		}
		s.respondError(w, http.StatusInternalServerError, "listing results")
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	s.respondJSON(w, map[string]interface{}{"results": names})
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !validName(name) {
		s.respondError(w, http.StatusBadRequest, "invalid result name")
		return
	}

	res, err := benchmark.Load(filepath.Join(s.cfg.ResultsDir, name+".json"))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			s.respondError(w, http.StatusNotFound, "result not found")
			return
		}
		s.logger.Error("loading result", zap.String("name", name), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "loading result")
		return
	}
	s.respondJSON(w, res)
}

func (s *Server) handleGetPlot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !validName(name) {
		s.respondError(w, http.StatusBadRequest, "invalid plot name")
		return
	}

	path := filepath.Join(s.cfg.PlotsDir, name+".html")
	if _, err := os.Stat(path); err != nil {
		s.respondError(w, http.StatusNotFound, "plot not found")
		return
	}
	http.ServeFile(w, r, path)
}

func (s *Server) respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// validName rejects anything that could escape the configured directories.
func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "/\\") && !strings.Contains(name, "..")
}
