package market

import (
	"context"
	"errors"
	"testing"

	"github.com/hchs200771/100-up-and-down-stocks/internal/common"
	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
)

type stubTWSE struct {
	report *models.TWSEDailyResponse
	err    error
}

func (s *stubTWSE) GetDailyQuotes(ctx context.Context) (*models.TWSEDailyResponse, error) {
	return s.report, s.err
}

type stubTPEX struct {
	report *models.TPEXDailyResponse
	err    error
}

func (s *stubTPEX) GetDailyQuotes(ctx context.Context) (*models.TPEXDailyResponse, error) {
	return s.report, s.err
}

func TestGetMarketMovers_CombinesBothSources(t *testing.T) {
	twse := &stubTWSE{report: &models.TWSEDailyResponse{Data: [][]any{
		{"2330", "TSMC", "", "1000", "", "", "", "600.00", "+10.00<b></b>"},
	}}}
	tpex := &stubTPEX{report: &models.TPEXDailyResponse{Tables: []models.TPEXTable{
		{Data: [][]any{{"5678", "SmallCo", "50", "-2", "", "", "", "", "1000"}}},
	}}}

	svc := NewService(twse, tpex, common.NewSilentLogger())
	snap, err := svc.GetMarketMovers(context.Background())
	if err != nil {
		t.Fatalf("GetMarketMovers failed: %v", err)
	}

	if snap.Gainers[0].Code != "2330" {
		t.Errorf("gainers[0] = %s, want 2330", snap.Gainers[0].Code)
	}
	if snap.Losers[0].Code != "5678" {
		t.Errorf("losers[0] = %s, want 5678", snap.Losers[0].Code)
	}
	if got := snap.StockMap["2330"]; got != "+1.69%" {
		t.Errorf("stockMap[2330] = %q, want +1.69%%", got)
	}
	if got := snap.StockMap["5678"]; got != "-3.85%" {
		t.Errorf("stockMap[5678] = %q, want -3.85%%", got)
	}
	if snap.Timestamp == "" {
		t.Error("timestamp should be set")
	}
}

func TestGetMarketMovers_FailsWhenEitherSourceFails(t *testing.T) {
	good := &models.TWSEDailyResponse{Data: [][]any{
		{"2330", "TSMC", "", "1000", "", "", "", "600.00", "+10.00"},
	}}

	svc := NewService(
		&stubTWSE{report: good},
		&stubTPEX{err: errors.New("connection refused")},
		common.NewSilentLogger(),
	)
	if _, err := svc.GetMarketMovers(context.Background()); err == nil {
		t.Error("expected error when TPEx fetch fails, got nil")
	}

	svc = NewService(
		&stubTWSE{err: errors.New("connection refused")},
		&stubTPEX{report: &models.TPEXDailyResponse{}},
		common.NewSilentLogger(),
	)
	if _, err := svc.GetMarketMovers(context.Background()); err == nil {
		t.Error("expected error when TWSE fetch fails, got nil")
	}
}

func TestGetMarketMovers_NoUsableRows(t *testing.T) {
	svc := NewService(
		&stubTWSE{report: &models.TWSEDailyResponse{}},
		&stubTPEX{report: &models.TPEXDailyResponse{}},
		common.NewSilentLogger(),
	)

	_, err := svc.GetMarketMovers(context.Background())
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}
