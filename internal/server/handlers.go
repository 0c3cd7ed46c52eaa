package server

import (
	"errors"
	"net/http"

	"github.com/hchs200771/100-up-and-down-stocks/internal/common"
	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
	"github.com/hchs200771/100-up-and-down-stocks/internal/services/market"
)

// handleHealth responds to GET/HEAD /api/health with {"status":"ok"}.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET/HEAD /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleMarketData runs one full fetch-normalize-rank cycle. A day with no
// usable rows is a 404, not an empty 200; everything else surfaces as a
// generic 500 with the cause logged server-side only.
func (s *Server) handleMarketData(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, err := s.app.MarketService.GetMarketMovers(r.Context())
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			WriteError(w, http.StatusNotFound, "no market data available for today")
			return
		}
		s.logger.Error().Err(err).Msg("Market data fetch failed")
		WriteError(w, http.StatusInternalServerError, "failed to fetch market data")
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// handleClassify groups a ranked stock list into thematic categories.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.AdvisorService == nil {
		WriteError(w, http.StatusServiceUnavailable, "AI advisor is not configured")
		return
	}

	var req struct {
		Stocks []models.Stock `json:"stocks"`
		Label  string         `json:"label"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Label == "" {
		WriteError(w, http.StatusBadRequest, "label is required")
		return
	}

	groups, err := s.app.AdvisorService.ClassifyStocks(r.Context(), req.Stocks, req.Label)
	if err != nil {
		s.logger.Error().Err(err).Str("label", req.Label).Msg("Classification failed")
		WriteError(w, http.StatusInternalServerError, "failed to classify stocks")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"groups": groups,
	})
}

// handleSummary produces the narrative over both classified sides.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.AdvisorService == nil {
		WriteError(w, http.StatusServiceUnavailable, "AI advisor is not configured")
		return
	}

	var req struct {
		GainerGroups []models.CategoryGroup `json:"gainer_groups"`
		LoserGroups  []models.CategoryGroup `json:"loser_groups"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	summary, err := s.app.AdvisorService.SummarizeGroups(r.Context(), req.GainerGroups, req.LoserGroups)
	if err != nil {
		s.logger.Error().Err(err).Msg("Summary generation failed")
		WriteError(w, http.StatusInternalServerError, "failed to generate summary")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"summary": summary,
	})
}
