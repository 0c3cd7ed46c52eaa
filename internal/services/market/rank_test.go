package market

import (
	"fmt"
	"testing"
	"time"

	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
)

func TestFormatPct(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{3.456, "+3.46%"},
		{-1.2, "-1.20%"},
		{0, "0.00%"},
		{10, "+10.00%"},
		{-0.005, "-0.01%"},
	}

	for _, tc := range cases {
		if got := formatPct(tc.pct); got != tc.want {
			t.Errorf("formatPct(%v) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}

func TestBuildSnapshot_SortsAndTruncates(t *testing.T) {
	stocks := make([]models.Stock, 0, 250)
	for i := 0; i < 250; i++ {
		stocks = append(stocks, models.Stock{
			Code:  fmt.Sprintf("%04d", i),
			Name:  fmt.Sprintf("Stock%d", i),
			Pct:   float64(i) - 125, // range -125 .. +124
			Close: 10,
		})
	}

	snap := buildSnapshot(stocks, time.Now())

	if len(snap.Gainers) != 100 {
		t.Fatalf("gainers length = %d, want 100", len(snap.Gainers))
	}
	if len(snap.Losers) != 100 {
		t.Fatalf("losers length = %d, want 100", len(snap.Losers))
	}

	for i := 1; i < len(snap.Gainers); i++ {
		if snap.Gainers[i].Pct > snap.Gainers[i-1].Pct {
			t.Fatalf("gainers not descending at %d", i)
		}
	}
	for i := 1; i < len(snap.Losers); i++ {
		if snap.Losers[i].Pct < snap.Losers[i-1].Pct {
			t.Fatalf("losers not ascending at %d", i)
		}
	}

	if snap.Gainers[0].Pct != 124 {
		t.Errorf("top gainer pct = %v, want 124", snap.Gainers[0].Pct)
	}
	if snap.Losers[0].Pct != -125 {
		t.Errorf("top loser pct = %v, want -125", snap.Losers[0].Pct)
	}

	if len(snap.StockMap) != 250 {
		t.Errorf("stockMap covers %d codes, want all 250", len(snap.StockMap))
	}
}

func TestBuildSnapshot_FewerThanLimit(t *testing.T) {
	stocks := []models.Stock{
		{Code: "2330", Pct: 1.5, Close: 600},
		{Code: "5678", Pct: -2.0, Close: 50},
	}

	snap := buildSnapshot(stocks, time.Now())

	if len(snap.Gainers) != 2 || len(snap.Losers) != 2 {
		t.Fatalf("expected both lists to hold all qualifying rows, got %d/%d", len(snap.Gainers), len(snap.Losers))
	}
	if snap.Gainers[0].Code != "2330" {
		t.Errorf("gainers[0] = %s, want 2330", snap.Gainers[0].Code)
	}
	if snap.Losers[0].Code != "5678" {
		t.Errorf("losers[0] = %s, want 5678", snap.Losers[0].Code)
	}
}

func TestBuildSnapshot_TiesKeepInputOrder(t *testing.T) {
	stocks := []models.Stock{
		{Code: "1111", Pct: 1.0},
		{Code: "2222", Pct: 1.0},
		{Code: "3333", Pct: 1.0},
	}

	snap := buildSnapshot(stocks, time.Now())

	for i, want := range []string{"1111", "2222", "3333"} {
		if snap.Gainers[i].Code != want {
			t.Errorf("gainers[%d] = %s, want %s (stable order)", i, snap.Gainers[i].Code, want)
		}
		if snap.Losers[i].Code != want {
			t.Errorf("losers[%d] = %s, want %s (stable order)", i, snap.Losers[i].Code, want)
		}
	}
}

func TestBuildSnapshot_StockMapLastWriteWins(t *testing.T) {
	stocks := []models.Stock{
		{Code: "9999", Pct: 1.0},
		{Code: "9999", Pct: -4.0},
	}

	snap := buildSnapshot(stocks, time.Now())

	if got := snap.StockMap["9999"]; got != "-4.00%" {
		t.Errorf("stockMap collision = %q, want later entry -4.00%%", got)
	}
}

func TestBuildSnapshot_TimestampTaipei(t *testing.T) {
	at := time.Date(2026, 8, 25, 6, 30, 0, 0, time.UTC) // 14:30 in Taipei
	snap := buildSnapshot([]models.Stock{{Code: "2330", Pct: 1}}, at)

	if snap.Timestamp != "2026/08/25 14:30:00" {
		t.Errorf("timestamp = %q, want 2026/08/25 14:30:00", snap.Timestamp)
	}
}
