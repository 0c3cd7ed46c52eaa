package market

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
)

// Column positions in the TWSE all-quotes report.
const (
	twseColCode   = 0
	twseColName   = 1
	twseColAmount = 3
	twseColClose  = 7
	twseColChange = 8
)

// Column positions in the TPEx daily quotes report.
const (
	tpexColCode   = 0
	tpexColName   = 1
	tpexColClose  = 2
	tpexColChange = 3
	tpexColAmount = 8
)

// TPEx mixes warrants and other non-equity instruments into the same report;
// their codes run 6 characters and up.
const tpexMaxCodeLen = 6

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// cell returns row[i] as a display string. Missing or null cells are "".
func cell(row []any, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parsePrice strips thousands separators and parses a price cell.
// Suspended or untraded rows carry "--"-style placeholders and fail here.
func parsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseChange handles the change column, which the feeds decorate with HTML
// markup and an explicit plus sign on up days.
func parseChange(s string) (float64, bool) {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimPrefix(s, "+")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// changePct computes the percentage change against the derived previous
// close. A zero previous close yields 0 by convention.
func changePct(close, change float64) float64 {
	prevClose := close - change
	if prevClose == 0 {
		return 0
	}
	return change / prevClose * 100
}

// normalizeTWSE converts the TWSE all-quotes report into canonical stocks.
// Rows whose close or change fail to parse, or whose close is zero, are
// skipped; the skip count is returned as a side metric.
func normalizeTWSE(report *models.TWSEDailyResponse) ([]models.Stock, int) {
	if report == nil || len(report.Data) == 0 {
		return nil, 0
	}

	stocks := make([]models.Stock, 0, len(report.Data))
	skipped := 0
	for _, row := range report.Data {
		close, okClose := parsePrice(cell(row, twseColClose))
		change, okChange := parseChange(cell(row, twseColChange))
		if !okClose || !okChange || close == 0 {
			skipped++
			continue
		}

		stocks = append(stocks, models.Stock{
			Code:   cell(row, twseColCode),
			Name:   cell(row, twseColName),
			Pct:    changePct(close, change),
			Close:  close,
			Amount: strings.ReplaceAll(cell(row, twseColAmount), ",", ""),
		})
	}
	return stocks, skipped
}

// normalizeTPEX converts the TPEx daily quotes report into canonical stocks.
// Empty close/change cells default to "0" before parsing, matching the feed's
// habit of omitting values on untraded rows; a zero close still drops the row.
func normalizeTPEX(report *models.TPEXDailyResponse) ([]models.Stock, int) {
	if report == nil {
		return nil, 0
	}
	rows := report.Rows()
	if len(rows) == 0 {
		return nil, 0
	}

	stocks := make([]models.Stock, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		code := cell(row, tpexColCode)
		if len(code) >= tpexMaxCodeLen {
			skipped++
			continue
		}

		close, okClose := parsePrice(defaultZero(cell(row, tpexColClose)))
		change, okChange := parseChange(defaultZero(cell(row, tpexColChange)))
		if !okClose || !okChange || close == 0 {
			skipped++
			continue
		}

		stocks = append(stocks, models.Stock{
			Code:   code,
			Name:   cell(row, tpexColName),
			Pct:    changePct(close, change),
			Close:  close,
			Amount: strings.ReplaceAll(defaultZero(cell(row, tpexColAmount)), ",", ""),
		})
	}
	return stocks, skipped
}

func defaultZero(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}
	return s
}
