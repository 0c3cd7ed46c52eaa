package market

import (
	"fmt"
	"sort"
	"time"

	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
)

// rankLimit caps each side of the snapshot.
const rankLimit = 100

// taipei is the display timezone for snapshot timestamps.
var taipei = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}()

// buildSnapshot ranks the combined stock set into a snapshot. Sorting is
// stable so ties keep input order (TWSE before TPEx) and output stays
// deterministic. The stock map covers every stock, not just the ranked ones;
// on code collision across exchanges the later (TPEx) entry wins.
func buildSnapshot(stocks []models.Stock, now time.Time) *models.MarketSnapshot {
	stockMap := make(map[string]string, len(stocks))
	for _, s := range stocks {
		stockMap[s.Code] = formatPct(s.Pct)
	}

	gainers := make([]models.Stock, len(stocks))
	copy(gainers, stocks)
	sort.SliceStable(gainers, func(i, j int) bool { return gainers[i].Pct > gainers[j].Pct })

	losers := make([]models.Stock, len(stocks))
	copy(losers, stocks)
	sort.SliceStable(losers, func(i, j int) bool { return losers[i].Pct < losers[j].Pct })

	return &models.MarketSnapshot{
		Gainers:   truncate(gainers, rankLimit),
		Losers:    truncate(losers, rankLimit),
		StockMap:  stockMap,
		Timestamp: now.In(taipei).Format("2006/01/02 15:04:05"),
	}
}

func truncate(stocks []models.Stock, n int) []models.Stock {
	if len(stocks) > n {
		return stocks[:n]
	}
	return stocks
}

// formatPct renders a signed two-decimal percentage. The plus sign appears
// only for strictly positive values.
func formatPct(pct float64) string {
	if pct > 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}
