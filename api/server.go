// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs pricing logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"quotecalc/core/pricing"
	"quotecalc/core/rates"
	"quotecalc/internal/errors"
	"quotecalc/internal/logging"
)

// Server is the API server
type Server struct {
	mux     *http.ServeMux
	table   *rates.Table
	cfg     pricing.Config
	version string
}

// NewServer creates a new API server bound to a validated rate table.
func NewServer(version string, table *rates.Table, cfg pricing.Config) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		table:   table,
		cfg:     cfg,
		version: version,
	}
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /quote", s.handleQuote)
	s.mux.HandleFunc("GET /products", s.handleProducts)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	engineReq, err := req.toEngineRequest()
	if err != nil {
		s.writeError(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	// Execute engine (NO PRICING LOGIC HERE)
	totals, err := pricing.Aggregate(engineReq, s.table, s.cfg)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	logging.Debug("quote computed",
		zap.Int("lines", totals.LineCount),
		zap.Duration("duration", time.Since(start)))

	s.writeJSON(w, QuoteResponse{Totals: totals}, http.StatusOK)
}

// handleProducts handles GET /products
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	products := make([]ProductInfo, 0, len(rates.Kinds()))
	for _, kind := range rates.Kinds() {
		tiers, err := s.table.Tiers(kind)
		if err != nil {
			continue // product not in the active table
		}
		labels := make([]string, 0, len(tiers))
		for _, tier := range tiers {
			labels = append(labels, tier.Label)
		}
		products = append(products, ProductInfo{
			Kind:   string(kind),
			Family: string(kind.Family()),
			Tiers:  labels,
		})
	}
	s.writeJSON(w, map[string]interface{}{
		"products": products,
		"count":    len(products),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": s.version,
		"engine":  "quotecalc",
	}, http.StatusOK)
}

// writeEngineError maps engine error types onto HTTP statuses: bad user
// input is correctable (400), a broken rate table is a deployment bug (500).
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.IsType(err, errors.TypeInput):
		s.writeError(w, string(errors.TypeInput), err.Error(), http.StatusBadRequest)
	case errors.IsType(err, errors.TypeConfig):
		logging.Error("rate table misconfigured", zap.Error(err))
		s.writeError(w, string(errors.TypeConfig), err.Error(), http.StatusInternalServerError)
	default:
		s.writeError(w, string(errors.TypeInternal), err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}
