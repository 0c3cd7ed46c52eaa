// Package models defines data structures for the market mover server
package models

// Stock is the canonical per-security record for one trading day,
// unified across the TWSE and TPEx feeds.
type Stock struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Pct    float64 `json:"pct"`    // percentage change vs previous close
	Close  float64 `json:"close"`  // closing price, never zero
	Amount string  `json:"amount"` // raw traded value, unit conversion happens at presentation time
}

// MarketSnapshot is the aggregate result of one fetch cycle.
// Gainers are sorted descending by Pct, losers ascending, each capped at 100.
type MarketSnapshot struct {
	Gainers   []Stock           `json:"gainers"`
	Losers    []Stock           `json:"losers"`
	StockMap  map[string]string `json:"stockMap"` // code → signed two-decimal percentage, e.g. "+3.46%"
	Timestamp string            `json:"timestamp"`
}

// CategoryGroup is a labeled cluster of securities sharing a classification
// theme, as determined by the generative model.
type CategoryGroup struct {
	Category string   `json:"category"`
	Stocks   []string `json:"stocks"` // "name(code)" display strings
}
