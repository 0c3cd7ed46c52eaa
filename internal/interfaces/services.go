package interfaces

import (
	"context"

	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
)

// MarketService handles market data operations
type MarketService interface {
	// GetMarketMovers fetches both exchange feeds, normalizes them, and ranks
	// the combined set into a snapshot of top gainers and losers
	GetMarketMovers(ctx context.Context) (*models.MarketSnapshot, error)
}

// AdvisorService produces generative-model classification and narrative
// for ranked stock lists
type AdvisorService interface {
	// ClassifyStocks groups stocks into thematic categories.
	// A response the model fails to structure correctly degrades to an
	// empty slice rather than an error.
	ClassifyStocks(ctx context.Context, stocks []models.Stock, label string) ([]models.CategoryGroup, error)

	// SummarizeGroups produces a short narrative over both classified sides.
	// An empty model response degrades to a fixed fallback string.
	SummarizeGroups(ctx context.Context, gainerGroups, loserGroups []models.CategoryGroup) (string, error)
}
