package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hchs200771/100-up-and-down-stocks/internal/app"
	"github.com/hchs200771/100-up-and-down-stocks/internal/common"
	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
	"github.com/hchs200771/100-up-and-down-stocks/internal/services/market"
)

type stubMarketService struct {
	snapshot *models.MarketSnapshot
	err      error
}

func (s *stubMarketService) GetMarketMovers(ctx context.Context) (*models.MarketSnapshot, error) {
	return s.snapshot, s.err
}

type stubAdvisorService struct {
	groups       []models.CategoryGroup
	classifyErr  error
	summary      string
	summarizeErr error
}

func (s *stubAdvisorService) ClassifyStocks(ctx context.Context, stocks []models.Stock, label string) ([]models.CategoryGroup, error) {
	return s.groups, s.classifyErr
}

func (s *stubAdvisorService) SummarizeGroups(ctx context.Context, gainerGroups, loserGroups []models.CategoryGroup) (string, error) {
	return s.summary, s.summarizeErr
}

func newTestHandler(t *testing.T, a *app.App) http.Handler {
	t.Helper()
	if a.Config == nil {
		a.Config = common.NewDefaultConfig()
	}
	if a.Logger == nil {
		a.Logger = common.NewSilentLogger()
	}
	return NewServer(a).Handler()
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler(t, &app.App{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t, &app.App{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "version")
}

func TestHandleMarketData_OK(t *testing.T) {
	snapshot := &models.MarketSnapshot{
		Gainers: []models.Stock{{Code: "2330", Name: "TSMC", Pct: 1.69, Close: 600, Amount: "123000000000"}},
		Losers:  []models.Stock{{Code: "5678", Name: "SmallCo", Pct: -3.85, Close: 50, Amount: "1000"}},
		StockMap: map[string]string{
			"2330": "+1.69%",
			"5678": "-3.85%",
		},
		Timestamp: "2026/08/25 14:30:00",
	}

	handler := newTestHandler(t, &app.App{
		MarketService: &stubMarketService{snapshot: snapshot},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/market-data", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body models.MarketSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Gainers, 1)
	assert.Equal(t, "2330", body.Gainers[0].Code)
	assert.Equal(t, "+1.69%", body.StockMap["2330"])
	assert.Equal(t, "2026/08/25 14:30:00", body.Timestamp)
}

func TestHandleMarketData_NoData(t *testing.T) {
	handler := newTestHandler(t, &app.App{
		MarketService: &stubMarketService{err: market.ErrNoData},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/market-data", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no market data available for today", body.Error)
}

func TestHandleMarketData_UpstreamFailure(t *testing.T) {
	handler := newTestHandler(t, &app.App{
		MarketService: &stubMarketService{err: errors.New("TWSE API error: status 503")},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/market-data", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "failed to fetch market data", body.Error)
	// The upstream cause must not leak into the response.
	assert.NotContains(t, rec.Body.String(), "503")
}

func TestHandleMarketData_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, &app.App{
		MarketService: &stubMarketService{},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/market-data", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleClassify(t *testing.T) {
	groups := []models.CategoryGroup{
		{Category: "半導體", Stocks: []string{"2330", "2454"}},
	}

	handler := newTestHandler(t, &app.App{
		AdvisorService: &stubAdvisorService{groups: groups},
	})

	payload := `{"stocks":[{"code":"2330","name":"TSMC","pct":1.69,"close":600,"amount":"123000000000"}],"label":"漲"}`
	req := httptest.NewRequest(http.MethodPost, "/api/classify", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Groups []models.CategoryGroup `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Groups, 1)
	assert.Equal(t, "半導體", body.Groups[0].Category)
}

func TestHandleClassify_MissingLabel(t *testing.T) {
	handler := newTestHandler(t, &app.App{
		AdvisorService: &stubAdvisorService{},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/classify", bytes.NewBufferString(`{"stocks":[]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleClassify_AdvisorNotConfigured(t *testing.T) {
	handler := newTestHandler(t, &app.App{})

	req := httptest.NewRequest(http.MethodPost, "/api/classify", bytes.NewBufferString(`{"stocks":[],"label":"漲"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AI advisor is not configured", body.Error)
}

func TestHandleSummary(t *testing.T) {
	handler := newTestHandler(t, &app.App{
		AdvisorService: &stubAdvisorService{summary: "台股今日震盪走高。"},
	})

	payload := `{"gainer_groups":[{"category":"半導體","stocks":["2330"]}],"loser_groups":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/summary", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "台股今日震盪走高。", body["summary"])
}

func TestHandleSummary_AdvisorNotConfigured(t *testing.T) {
	handler := newTestHandler(t, &app.App{})

	req := httptest.NewRequest(http.MethodPost, "/api/summary", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPanicRecovery(t *testing.T) {
	handler := applyMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), common.NewSilentLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/market-data", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCorrelationIDHeader(t *testing.T) {
	handler := newTestHandler(t, &app.App{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}
