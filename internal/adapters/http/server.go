// Package http exposes the search engine over a small JSON API.
//
// The adapter depends on a narrow Engine interface rather than the
// concrete facade, so callers can wire instrumented or cached variants
// without touching the handlers.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/dateq/internal/dto"
	"github.com/aretw0/dateq/pkg/domain"
	"github.com/aretw0/dateq/pkg/export"
)

// Engine is the search surface the HTTP adapter serves.
type Engine interface {
	GenerateWith(ctx context.Context, input string, opts domain.SearchOptions) (*domain.Result, error)
	Options() domain.SearchOptions
}

// Server holds the handler dependencies.
type Server struct {
	engine  Engine
	logger  *slog.Logger
	version string
	timeout time.Duration
}

// DefaultSearchTimeout bounds one search request. Long digit sequences
// have a combinatorial tail, so requests need a deadline.
const DefaultSearchTimeout = 30 * time.Second

// Option configures the handler.
type Option func(*handlerConfig)

type handlerConfig struct {
	metrics http.Handler
	version string
	timeout time.Duration
}

// WithMetricsHandler mounts the given handler at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(c *handlerConfig) {
		c.metrics = h
	}
}

// WithSearchTimeout overrides DefaultSearchTimeout. Zero disables the
// per-request deadline.
func WithSearchTimeout(d time.Duration) Option {
	return func(c *handlerConfig) {
		c.timeout = d
	}
}

// WithVersion sets the version string reported by /healthz.
func WithVersion(v string) Option {
	return func(c *handlerConfig) {
		c.version = v
	}
}

// NewHandler builds the chi router for the API.
func NewHandler(engine Engine, logger *slog.Logger, opts ...Option) http.Handler {
	cfg := handlerConfig{version: "dev", timeout: DefaultSearchTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{engine: engine, logger: logger, version: cfg.version, timeout: cfg.timeout}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/equations", s.handleGenerate)
		r.Get("/options", s.handleOptions)
	})
	if cfg.metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metrics)
	}

	return r
}

type generateRequest struct {
	Input   string              `json:"input"`
	Options *dto.OptionsPayload `json:"options,omitempty"`
	Sort    string              `json:"sort,omitempty"`
	Limit   int                 `json:"limit,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sortPolicy := domain.SortNone
	if req.Sort != "" {
		var err error
		sortPolicy, err = domain.ParseSortPolicy(req.Sort)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	opts := s.engine.Options()
	if req.Options != nil {
		opts = req.Options.Apply(opts)
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	result, err := s.engine.GenerateWith(ctx, req.Input, opts)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientDigits):
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrInvalidOptions):
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			s.writeError(w, http.StatusServiceUnavailable, "search interrupted")
		default:
			s.logger.Error("search failed", "input", req.Input, "err", err)
			s.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.logger.Info("search served",
		"digits", result.Digits,
		"equations", len(result.Equations),
		"duration", time.Since(started),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := export.JSON(w, result, export.Options{
		Sort:        sortPolicy,
		Limit:       req.Limit,
		GeneratedAt: time.Now(),
	}); err != nil {
		s.logger.Error("response encoding failed", "err", err)
	}
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts := s.engine.Options()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"operators":  string(opts.Operators),
		"factorial":  opts.Factorial,
		"max_groups": opts.MaxGroups,
		"tolerance":  opts.Tolerance,
		"workers":    opts.Workers,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encoding failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
