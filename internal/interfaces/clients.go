// Package interfaces defines client and service contracts
package interfaces

import (
	"context"

	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
)

// TWSEClient provides access to the TWSE daily all-quotes feed
type TWSEClient interface {
	// GetDailyQuotes retrieves the end-of-day quote report for all listed securities
	GetDailyQuotes(ctx context.Context) (*models.TWSEDailyResponse, error)
}

// TPEXClient provides access to the TPEx daily quotes feed
type TPEXClient interface {
	// GetDailyQuotes retrieves the end-of-day quote report for all OTC securities
	GetDailyQuotes(ctx context.Context) (*models.TPEXDailyResponse, error)
}

// GeminiClient provides access to the Gemini API
type GeminiClient interface {
	// GenerateContent generates free-text content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// GenerateCategoryGroups generates content constrained to the category-group
	// response schema (a JSON array of {category, stocks} objects) and returns
	// the raw JSON text
	GenerateCategoryGroups(ctx context.Context, prompt string) (string, error)
}
