// Package advisor produces generative-model classification and narrative
// over ranked stock lists
package advisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hchs200771/100-up-and-down-stocks/internal/common"
	"github.com/hchs200771/100-up-and-down-stocks/internal/interfaces"
	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
)

// SummaryFallback is returned when the model produces no usable text.
const SummaryFallback = "unable to generate summary"

// Service implements AdvisorService
type Service struct {
	gemini interfaces.GeminiClient
	logger *common.Logger
}

// NewService creates a new advisor service
func NewService(gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		gemini: gemini,
		logger: logger,
	}
}

// ClassifyStocks groups stocks into thematic categories using the model's
// structured-output contract. A response that fails to parse degrades to an
// empty slice — lossy by design, so one bad model answer never takes down
// the whole render.
func (s *Service) ClassifyStocks(ctx context.Context, stocks []models.Stock, label string) ([]models.CategoryGroup, error) {
	if len(stocks) == 0 {
		return []models.CategoryGroup{}, nil
	}

	prompt := buildClassifyPrompt(stocks, label)

	response, err := s.gemini.GenerateCategoryGroups(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", label, err)
	}

	groups := parseCategoryGroups(response)
	if groups == nil {
		s.logger.Warn().Str("label", label).Msg("Failed to parse classification response, returning empty groups")
		return []models.CategoryGroup{}, nil
	}

	s.logger.Info().Str("label", label).Int("groups", len(groups)).Msg("Classified stocks")
	return groups, nil
}

// SummarizeGroups produces a short narrative over both classified sides.
// Any model failure or empty response degrades to the fixed fallback text.
func (s *Service) SummarizeGroups(ctx context.Context, gainerGroups, loserGroups []models.CategoryGroup) (string, error) {
	prompt := buildSummaryPrompt(gainerGroups, loserGroups)

	text, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Summary generation produced no text, using fallback")
		return SummaryFallback, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return SummaryFallback, nil
	}
	return text, nil
}

// buildClassifyPrompt embeds each stock as name(code)[traded value in
// hundred-millions] with strict formatting instructions.
func buildClassifyPrompt(stocks []models.Stock, label string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a Taiwan stock market analyst. Group today's top %s into thematic categories", label))
	sb.WriteString(" (e.g. semiconductors, shipping, financials, biotech).\n\nStocks:\n")

	for _, stock := range stocks {
		sb.WriteString("- ")
		sb.WriteString(displayStock(stock))
		sb.WriteString("\n")
	}

	sb.WriteString(`
Rules:
- Every stock belongs to exactly one category
- Use short Traditional Chinese category labels
- Each stock entry in the output must be exactly the "name(code)" part of the input, without the traded value
- Order categories from most to fewest stocks
- Return ONLY the JSON array, no markdown code fences, no explanation`)

	return sb.String()
}

// displayStock renders one prompt line: name(code)[X.X億]. The raw traded
// value is converted to hundred-millions here, at presentation time only.
func displayStock(stock models.Stock) string {
	amount := "-"
	if v, err := strconv.ParseFloat(strings.TrimSpace(stock.Amount), 64); err == nil {
		amount = fmt.Sprintf("%.1f億", v/1e8)
	}
	return fmt.Sprintf("%s(%s)[%s]", stock.Name, stock.Code, amount)
}

// buildSummaryPrompt lists category→count pairs for both sides and asks for
// a compact narrative.
func buildSummaryPrompt(gainerGroups, loserGroups []models.CategoryGroup) string {
	var sb strings.Builder

	sb.WriteString("You are a Taiwan stock market commentator. Today's movers by theme:\n\n")
	sb.WriteString("Gainers: ")
	sb.WriteString(groupCounts(gainerGroups))
	sb.WriteString("\nLosers: ")
	sb.WriteString(groupCounts(loserGroups))
	sb.WriteString("\n\nWrite one market-mood sentence of at most 150 characters in Traditional Chinese. Return only the sentence, nothing else.")

	return sb.String()
}

func groupCounts(groups []models.CategoryGroup) string {
	if len(groups) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, fmt.Sprintf("%s(%d)", g.Category, len(g.Stocks)))
	}
	return strings.Join(parts, ", ")
}

// Ensure Service implements AdvisorService
var _ interfaces.AdvisorService = (*Service)(nil)
