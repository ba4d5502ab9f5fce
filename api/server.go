// Package api is the HTTP boundary layer. It ingests requests, loads
// reference data, orchestrates the pricing core, and serializes results.
// The API never performs pricing logic itself.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hbitsol/sistemaartn/core/pricing"
	"github.com/hbitsol/sistemaartn/core/rules"
	"github.com/hbitsol/sistemaartn/db"
	"github.com/hbitsol/sistemaartn/internal/errors"
	"github.com/hbitsol/sistemaartn/internal/logging"
)

// Server is the HTTP API server
type Server struct {
	repo       *db.Repository
	ruleTable  *rules.RuleTable
	aggregator *pricing.Aggregator
	router     chi.Router
	version    string
}

// NewServer creates an API server over the repository and rule table.
// The rule table may be nil when its source was unavailable at startup;
// pricing endpoints then answer RULE_TABLE_UNAVAILABLE while CRM endpoints
// keep working.
func NewServer(version string, repo *db.Repository, rt *rules.RuleTable) *Server {
	s := &Server{
		repo:       repo,
		ruleTable:  rt,
		aggregator: pricing.NewAggregator(repo, pricing.WithWorkers(4)),
		version:    version,
	}

	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/rules", s.handleGetRules)

	r.Route("/clients", func(r chi.Router) {
		r.Get("/", s.handleListClients)
		r.Post("/", s.handleCreateClient)
		r.Get("/{id}", s.handleGetClient)
		r.Put("/{id}", s.handleUpdateClient)
		r.Delete("/{id}", s.handleDeleteClient)
	})

	r.Route("/materials", func(r chi.Router) {
		r.Get("/", s.handleListMaterials)
		r.Post("/", s.handleCreateMaterial)
		r.Get("/{id}", s.handleGetMaterial)
		r.Put("/{id}", s.handleUpdateMaterial)
		r.Delete("/{id}", s.handleDeleteMaterial)
	})

	r.Route("/difficulty-factors", func(r chi.Router) {
		r.Get("/", s.handleListDifficulties)
		r.Post("/", s.handleCreateDifficulty)
		r.Get("/{id}", s.handleGetDifficulty)
	})

	r.Get("/dashboard/stats", s.handleDashboardStats)

	r.Post("/calculate-price", s.handleCalculatePrice)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", s.handleListProjects)
		r.Post("/", s.handleCreateProject)
		r.Get("/{id}", s.handleGetProject)
		r.Put("/{id}/status", s.handleUpdateProjectStatus)
		r.Delete("/{id}", s.handleDeleteProject)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger logs each request with its duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// writeJSON serializes a success response
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encoding response", zap.Error(err))
	}
}

// writeError maps a domain error to an HTTP status and serializes it
func (s *Server) writeError(w http.ResponseWriter, err error) {
	errType := errors.TypeOf(err)

	var payload *errors.Error
	if e, ok := err.(*errors.Error); ok {
		payload = e
	} else {
		payload = errors.Internal("internal error", err)
	}

	status := statusFor(errType)
	if status >= http.StatusInternalServerError {
		logging.Error("request failed", zap.String("type", string(errType)), zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": payload})
}

// statusFor maps error taxonomy to HTTP status codes
func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeInvalidAmount,
		errors.TypeNegativeValue,
		errors.TypeUnknownEmployeeLevel,
		errors.TypeUnknownDifficultyLevel,
		errors.TypeMissingRuleData,
		errors.TypeInput:
		return http.StatusBadRequest
	case errors.TypeNotFound:
		return http.StatusNotFound
	case errors.TypeConflict:
		return http.StatusConflict
	case errors.TypeRuleTableUnavailable, errors.TypeConfig:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// rulesOrUnavailable returns the rule table or the unavailable error
func (s *Server) rulesOrUnavailable() (*rules.RuleTable, error) {
	if s.ruleTable == nil {
		return nil, errors.RuleTableUnavailable(nil)
	}
	return s.ruleTable, nil
}
