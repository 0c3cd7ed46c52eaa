package server

import (
	"net/http"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Market data
	mux.HandleFunc("/api/market-data", s.handleMarketData)

	// AI advisor
	mux.HandleFunc("/api/classify", s.handleClassify)
	mux.HandleFunc("/api/summary", s.handleSummary)

	// Bundled UI (production only)
	s.registerStatic(mux)
}
