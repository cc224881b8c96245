package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const defaultSignalLimit = 50

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListSignals returns the most recent signals
func (s *Server) handleListSignals(w http.ResponseWriter, r *http.Request) {
	limit := defaultSignalLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	signals, err := s.signals.List(limit)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to list signals")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"signals": signals,
		"count":   len(signals),
	})
}

// handleArticleStats returns ingestion counters
func (s *Server) handleArticleStats(w http.ResponseWriter, r *http.Request) {
	total, processed, err := s.articles.Stats()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read article stats")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]int{
		"total":       total,
		"processed":   processed,
		"unprocessed": total - processed,
	})
}

// handleGetCompany returns one roster entry
func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	company, err := s.companies.GetBySymbol(symbol)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to look up company")
		return
	}
	if company == nil {
		s.respondError(w, http.StatusNotFound, "company not found")
		return
	}

	s.respondJSON(w, http.StatusOK, company)
}

// handleCompanyStats returns derived price statistics for a company
func (s *Server) handleCompanyStats(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	company, err := s.companies.GetBySymbol(symbol)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to look up company")
		return
	}
	if company == nil {
		s.respondError(w, http.StatusNotFound, "company not found")
		return
	}

	stats, err := s.prices.Stats(*company)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
