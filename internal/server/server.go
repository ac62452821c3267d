// Package server exposes the estimation engine over a small HTTP JSON API.
// The server is a thin adapter: input ingestion, engine orchestration and
// output serialization only, no cost logic.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"vdicost/internal/engine"
)

// Server is the HTTP API over one Estimator.
type Server struct {
	estimator *engine.Estimator
	mux       *http.ServeMux
	metrics   *metrics
	logger    zerolog.Logger
}

// New builds the Server and registers its routes.
func New(estimator *engine.Estimator, logger zerolog.Logger) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		estimator: estimator,
		mux:       http.NewServeMux(),
		metrics:   newMetrics(reg),
		logger:    logger,
	}

	s.mux.HandleFunc("POST /estimate", s.handleEstimate)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return s
}

// Handler returns the route mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until the context is canceled or SIGINT/SIGTERM arrives, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-signalChan:
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("shutdown failed")
		}
		close(shutdownDone)
	}()

	s.logger.Info().Str("addr", addr).Msg("starting estimate API")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req engine.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.estimateRequests.WithLabelValues("bad_request", "none").Inc()
		s.writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error(), nil)
		return
	}

	estimate, err := s.estimator.Estimate(r.Context(), req)
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			s.metrics.estimateRequests.WithLabelValues("invalid", "none").Inc()
			s.writeError(w, http.StatusBadRequest, "INVALID_CONFIGURATION",
				"configuration is missing required fields or malformed", verr.Fields)
			return
		}
		s.metrics.estimateRequests.WithLabelValues("error", "none").Inc()
		s.writeError(w, http.StatusInternalServerError, "ENGINE_ERROR", err.Error(), nil)
		return
	}

	s.metrics.estimateRequests.WithLabelValues("ok", string(estimate.PricingSource)).Inc()
	s.metrics.estimateDuration.Observe(time.Since(start).Seconds())
	s.writeJSON(w, http.StatusOK, estimate)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string, fields []string) {
	s.writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message, Fields: fields}})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to write response")
	}
}
