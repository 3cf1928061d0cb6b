// Package chi exposes the reconciliation service over HTTP: the batch
// endpoint with the service manifest on bare GET, suggest and extend
// endpoints, entity previews, stats, health, and Prometheus metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/culturegraph/reconcile/internal/config"
	"github.com/culturegraph/reconcile/internal/domain"
	"github.com/culturegraph/reconcile/internal/domain/match"
	"github.com/culturegraph/reconcile/internal/domain/record"
	"github.com/culturegraph/reconcile/internal/repository/records"
	healthuc "github.com/culturegraph/reconcile/internal/usecase/health"
	reconcileuc "github.com/culturegraph/reconcile/internal/usecase/reconcile"
	suggestuc "github.com/culturegraph/reconcile/internal/usecase/suggest"
)

const maxBatchQueries = 100

// Reconciler processes query batches.
type Reconciler interface {
	ProcessBatch(ctx context.Context, batch map[string]match.Query) (map[string]reconcileuc.Result, error)
}

// Suggester answers auto-completion requests.
type Suggester interface {
	Entities(ctx context.Context, prefix string, cursor int) ([]match.Candidate, int, error)
	Types(prefix string) []match.TypeRef
	Properties(prefix string) []suggestuc.Property
	AllProperties() []suggestuc.Property
}

// RecordReader resolves single records for previews and stats.
type RecordReader interface {
	RecordByID(ctx context.Context, id string) (record.Record, error)
	Stats(ctx context.Context) (records.Counts, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server handles the reconciliation HTTP API.
type Server struct {
	reconciler Reconciler
	suggester  Suggester
	reader     RecordReader
	health     HealthChecker
	manifest   Manifest
	logger     *zap.Logger

	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	reconciler Reconciler,
	suggester Suggester,
	reader RecordReader,
	health HealthChecker,
	svcCfg config.ServiceConfig,
	logger *zap.Logger,
) *Server {
	s := &Server{
		reconciler: reconciler,
		suggester:  suggester,
		reader:     reader,
		health:     health,
		manifest:   NewManifest(svcCfg),
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMalformedBatch, http.StatusBadRequest, "bad_request"),
		sentinelHandler(domain.ErrRecordNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrUnknownCategory, http.StatusBadRequest, "bad_request"),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable"),
	}
	return s
}

// Routes mounts all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Reconcile)
	r.Post("/", s.Reconcile)
	r.Get("/stats", s.Stats)
	r.Get("/suggest/entity", s.SuggestEntity)
	r.Get("/suggest/type", s.SuggestType)
	r.Get("/suggest/property", s.SuggestProperty)
	r.Get("/extend", s.Extend)
	r.Get("/flyout", s.Flyout)
	r.Get("/preview/{id}", s.Preview)
	r.Get("/view/{id}", s.Preview)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// queryRequest is the wire form of a single reconciliation query.
type queryRequest struct {
	Query      string         `json:"query"`
	Limit      int            `json:"limit"`
	Type       string         `json:"type"`
	Types      []string       `json:"types"`
	Properties map[string]any `json:"properties"`
}

func (q queryRequest) toDomain() match.Query {
	typeID := q.Type
	if typeID == "" && len(q.Types) > 0 {
		typeID = q.Types[0]
	}
	return match.Query{
		Text:       q.Query,
		Limit:      q.Limit,
		TypeID:     typeID,
		Properties: q.Properties,
	}
}

// Reconcile handles the root endpoint. A GET without a queries parameter
// returns the service manifest; anything else runs the batch.
func (s *Server) Reconcile(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("queries")
	if raw == "" {
		if err := r.ParseForm(); err == nil {
			raw = r.PostFormValue("queries")
		}
	}

	if raw == "" {
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, s.manifest)
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", "No queries provided")
		return
	}

	var wire map[string]queryRequest
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		s.handleDomainError(w, domain.ErrMalformedBatch)
		return
	}
	if len(wire) > maxBatchQueries {
		writeError(w, http.StatusBadRequest, "bad_request",
			"queries count must be at most "+strconv.Itoa(maxBatchQueries))
		return
	}

	batch := make(map[string]match.Query, len(wire))
	for id, q := range wire {
		batch[id] = q.toDomain()
	}

	results, err := s.reconciler.ProcessBatch(r.Context(), batch)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.reader.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// suggestEntityResponse carries entity suggestions plus the advanced cursor.
type suggestEntityResponse struct {
	Result []match.Candidate `json:"result"`
	Cursor int               `json:"cursor"`
}

// SuggestEntity handles GET /suggest/entity.
func (s *Server) SuggestEntity(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	cursor := 0
	if c := r.URL.Query().Get("cursor"); c != "" {
		parsed, err := strconv.Atoi(c)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "cursor must be an integer")
			return
		}
		cursor = parsed
	}

	suggestions, next, err := s.suggester.Entities(r.Context(), prefix, cursor)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []match.Candidate{}
	}
	writeJSON(w, http.StatusOK, suggestEntityResponse{Result: suggestions, Cursor: next})
}

// SuggestType handles GET /suggest/type.
func (s *Server) SuggestType(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"result": s.suggester.Types(r.URL.Query().Get("prefix")),
	})
}

// SuggestProperty handles GET /suggest/property.
func (s *Server) SuggestProperty(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"result": s.suggester.Properties(r.URL.Query().Get("prefix")),
	})
}

// Extend handles GET /extend.
func (s *Server) Extend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"properties": s.suggester.AllProperties(),
	})
}

// Flyout handles GET /flyout, serving the same HTML as the preview.
func (s *Server) Flyout(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "No ID provided")
		return
	}
	s.servePreview(w, r, id)
}

// Preview handles GET /preview/{id} and GET /view/{id}.
func (s *Server) Preview(w http.ResponseWriter, r *http.Request) {
	s.servePreview(w, r, chi.URLParam(r, "id"))
}

func (s *Server) servePreview(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := s.reader.RecordByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			http.Error(w, "Entity not found", http.StatusNotFound)
			return
		}
		s.handleDomainError(w, err)
		return
	}

	html, err := renderPreview(rec)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMalformedBatch,
		domain.ErrRecordNotFound,
		domain.ErrUnknownCategory,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
