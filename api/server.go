// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs cost logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cx-cost/adapters/storage"
	"cx-cost/core/engine"
	"cx-cost/core/registry"
	"cx-cost/core/types"
	"cx-cost/internal/errors"
	"cx-cost/internal/logging"
)

// Server is the API server
type Server struct {
	engine  *engine.Engine
	mux     *http.ServeMux
	version string
	store   *storage.DealStore
}

// NewServer creates a new API server without a deal store
func NewServer(eng *engine.Engine, version string) *Server {
	return NewServerWithStore(eng, version, nil)
}

// NewServerWithStore creates a new API server with a deal store attached
func NewServerWithStore(eng *engine.Engine, version string, store *storage.DealStore) *Server {
	s := &Server{
		engine:  eng,
		mux:     http.NewServeMux(),
		version: version,
		store:   store,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /estimate", s.handleEstimate)
	s.mux.HandleFunc("POST /compare", s.handleCompare)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Supporting endpoints
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.HandleFunc("GET /capabilities", s.handleCapabilities)
	s.mux.HandleFunc("GET /catalog/{region}", s.handleCatalog)
	s.mux.HandleFunc("GET /deals", s.handleListDeals)
	s.mux.HandleFunc("GET /deals/{id}", s.handleGetDeal)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// EstimateRequest is the POST /estimate body
type EstimateRequest struct {
	// Input is the full estimate input snapshot
	Input types.EstimateInput `json:"input"`

	// Save archives the result to the deal store after responding
	Save bool `json:"save,omitempty"`
}

// EstimateResponse is the POST /estimate result
type EstimateResponse struct {
	Financials *types.AggregatedFinancials `json:"financials"`
	DurationMs int64                       `json:"duration_ms"`
}

// handleEstimate handles POST /estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateInput(&req.Input); err != nil {
		s.writeError(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	agg, err := s.engine.Estimate(&req.Input)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	if req.Save {
		s.saveDeal(&req.Input, agg)
	}

	s.writeJSON(w, EstimateResponse{
		Financials: agg,
		DurationMs: time.Since(start).Milliseconds(),
	}, http.StatusOK)
}

// CompareRequest is the POST /compare body
type CompareRequest struct {
	Input types.EstimateInput `json:"input"`

	// Vendor restricts the comparison to one vendor; empty compares all
	Vendor types.VendorID `json:"vendor,omitempty"`
}

// handleCompare handles POST /compare
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateInput(&req.Input); err != nil {
		s.writeError(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	if req.Vendor != "" {
		b, err := s.engine.Compare(&req.Input, req.Vendor)
		if err != nil {
			s.writeEngineError(w, err)
			return
		}
		s.writeJSON(w, b, http.StatusOK)
		return
	}

	rows, err := s.engine.CompareAll(&req.Input)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"vendors": rows,
		"count":   len(rows),
	}, http.StatusOK)
}

// handleCatalog handles GET /catalog/{region}
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	region := types.Region(r.PathValue("region"))
	table, ok := s.engine.Catalog().Region(region)
	if !ok {
		s.writeError(w, "UNKNOWN_REGION", "no pricing table for region "+string(region), http.StatusNotFound)
		return
	}
	s.writeJSON(w, table, http.StatusOK)
}

// handleCapabilities handles GET /capabilities
func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"capabilities": registry.All(),
		"vendors":      types.AllVendors,
	}, http.StatusOK)
}

// handleListDeals handles GET /deals
func (s *Server) handleListDeals(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, "NO_STORE", "deal store not configured", http.StatusServiceUnavailable)
		return
	}
	deals, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, "STORE_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"deals": deals,
		"count": len(deals),
	}, http.StatusOK)
}

// handleGetDeal handles GET /deals/{id}
func (s *Server) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, "NO_STORE", "deal store not configured", http.StatusServiceUnavailable)
		return
	}
	deal, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.IsType(err, errors.TypeNotFound) {
			s.writeError(w, "NOT_FOUND", err.Error(), http.StatusNotFound)
			return
		}
		s.writeError(w, "STORE_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, deal, http.StatusOK)
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
		"version":     s.version,
		"engine":      "cx-cost",
		"api_version": "v1",
	}, http.StatusOK)
}

// saveDeal archives the estimate without blocking the response. Failures
// are logged and dropped; persistence never gates an estimate.
func (s *Server) saveDeal(in *types.EstimateInput, agg *types.AggregatedFinancials) {
	if s.store == nil {
		logging.Warn("save requested but no deal store configured")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		deal, err := s.store.Save(ctx, in, agg)
		if err != nil {
			logging.Error("failed to archive deal", zap.Error(err),
				zap.String("client", in.Client.Name))
			return
		}
		logging.Info("deal archived", zap.String("id", deal.ID),
			zap.String("client", deal.ClientName))
	}()
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	if errors.IsType(err, errors.TypeNotFound) || errors.IsType(err, errors.TypeInput) {
		s.writeError(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}
	s.writeError(w, "ENGINE_ERROR", err.Error(), http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]string{
		"error":   code,
		"message": message,
	}, status)
}
