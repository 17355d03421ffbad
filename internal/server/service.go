// Package server exposes the estimator over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/theirongolddev/renobudget/internal/cli"
	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/intake"
	"github.com/theirongolddev/renobudget/internal/logging"
	"github.com/theirongolddev/renobudget/internal/money"
)

// GenericCalculationError is returned to clients when the tables cannot serve
// a request. The underlying lookup error is only logged.
const GenericCalculationError = cli.CalculationFailed

const maxBodyBytes = 64 << 10

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	Calculator   *estimate.Calculator
	Checker      *intake.Checker
	Money        *money.Formatter
	Catalog      []estimate.ProjectType
	Logger       *slog.Logger
	EventsBuffer int
}

// Event records one estimate request outcome.
type Event struct {
	ID          string               `json:"id"`
	Type        string               `json:"type"`
	Timestamp   time.Time            `json:"timestamp"`
	ProjectType estimate.ProjectType `json:"project_type,omitempty"`
	Status      int                  `json:"status"`
}

// Event types.
const (
	EventEstimate   = "estimate"
	EventInvalid    = "invalid_input"
	EventCalcFailed = "calculation_failed"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt          time.Time `json:"started_at"`
	Addr               string    `json:"addr"`
	Requests           int64     `json:"requests"`
	Estimates          int64     `json:"estimates"`
	ValidationFailures int64     `json:"validation_failures"`
	CalcFailures       int64     `json:"calculation_failures"`
	LastEstimateAt     time.Time `json:"last_estimate_at,omitempty"`
	LastError          string    `json:"last_error,omitempty"`
	CatalogSize        int       `json:"catalog_size"`
	TableGaps          int       `json:"table_gaps"`
	EventCount         int       `json:"event_count"`
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error       string            `json:"error"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	RequestID   string            `json:"request_id,omitempty"`
}

// Service provides the estimator HTTP API.
type Service struct {
	cfg    Config
	logger *slog.Logger
	gaps   int

	mu             sync.RWMutex
	startedAt      time.Time
	requests       int64
	estimates      int64
	invalid        int64
	calcFailures   int64
	lastEstimateAt time.Time
	lastError      string
	events         []Event
}

// New returns a service with the provided config. Missing collaborators fall
// back to the built-in tables, catalog and default limits.
func New(cfg Config) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Money == nil {
		cfg.Money = money.Default()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = estimate.Catalog
	}
	if cfg.Calculator == nil {
		cfg.Calculator = estimate.NewCalculator(estimate.DefaultTables())
	}
	if cfg.Checker == nil {
		cfg.Checker = intake.NewChecker(intake.DefaultLimits(), cfg.Catalog, cfg.Money)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Service{
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "http_server")),
		gaps:      len(cfg.Calculator.Tables().Gaps(cfg.Catalog)),
		startedAt: time.Now(),
	}
}

// Handler returns the routed handler wrapped in request ID and logging
// middleware.
func (s *Service) Handler() http.Handler {
	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/healthz", s.handleHealth)
	router.HandlerFunc(http.MethodGet, "/v1/status", s.handleStatus)
	router.HandlerFunc(http.MethodGet, "/v1/events", s.handleEvents)
	router.HandlerFunc(http.MethodGet, "/v1/catalog", s.handleCatalog)
	router.HandlerFunc(http.MethodGet, "/v1/catalog/:project", s.handleCatalogEntry)
	router.HandlerFunc(http.MethodPost, "/v1/estimate", s.handleEstimate)

	return s.requestID(s.logRequests(router))
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info("listening", slog.String("addr", s.cfg.Addr), slog.Int("table_gaps", s.gaps))

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, cli.BuildCatalogReport(s.cfg.Calculator.Tables(), s.cfg.Catalog))
}

func (s *Service) handleCatalogEntry(w http.ResponseWriter, r *http.Request) {
	project := estimate.ProjectType(httprouter.ParamsFromContext(r.Context()).ByName("project"))
	for _, p := range s.cfg.Catalog {
		if p == project {
			rep := cli.BuildCatalogReport(s.cfg.Calculator.Tables(), []estimate.ProjectType{p})
			writeJSON(w, http.StatusOK, rep.Projects[0])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error:     fmt.Sprintf("unknown project type %q", project),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func (s *Service) handleEstimate(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	logger := logging.FromContext(r.Context())

	var raw intake.Raw
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&raw); err != nil {
		s.record(Event{Type: EventInvalid, Status: http.StatusBadRequest}, err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     "request body must be a JSON object with string fields home_value, yearly_income, project_type",
			RequestID: reqID,
		})
		return
	}

	in, err := s.cfg.Checker.Validate(raw)
	if err != nil {
		var verr *intake.ValidationError
		if !errors.As(err, &verr) {
			s.record(Event{Type: EventInvalid, Status: http.StatusBadRequest}, err)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: reqID})
			return
		}
		s.record(Event{Type: EventInvalid, Status: http.StatusBadRequest}, nil)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:       "please check your inputs",
			FieldErrors: verr.Fields,
			RequestID:   reqID,
		})
		return
	}

	est, err := s.cfg.Calculator.Compute(in)
	if err != nil {
		logging.LogError(logger, "estimate failed", err,
			slog.String("project_type", string(in.ProjectType)),
			slog.Bool("invalid_configuration", errors.Is(err, estimate.ErrInvalidConfiguration)))
		s.record(Event{Type: EventCalcFailed, ProjectType: in.ProjectType, Status: http.StatusUnprocessableEntity}, err)
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: GenericCalculationError, RequestID: reqID})
		return
	}

	s.record(Event{Type: EventEstimate, ProjectType: in.ProjectType, Status: http.StatusOK}, nil)
	writeJSON(w, http.StatusOK, cli.BuildReport(est, s.cfg.Money, ""))
}

// record stores ev in the ring buffer and updates counters. A non-nil err
// becomes the last error shown in status.
func (s *Service) record(ev Event, err error) {
	now := time.Now()
	ev.ID = uuid.NewString()
	ev.Timestamp = now

	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case EventEstimate:
		s.estimates++
		s.lastEstimateAt = now
	case EventInvalid:
		s.invalid++
	case EventCalcFailed:
		s.calcFailures++
	}
	if err != nil {
		s.lastError = err.Error()
	}

	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:          s.startedAt,
		Addr:               s.cfg.Addr,
		Requests:           s.requests,
		Estimates:          s.estimates,
		ValidationFailures: s.invalid,
		CalcFailures:       s.calcFailures,
		LastEstimateAt:     s.lastEstimateAt,
		LastError:          s.lastError,
		CatalogSize:        len(s.cfg.Catalog),
		TableGaps:          s.gaps,
		EventCount:         len(s.events),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
