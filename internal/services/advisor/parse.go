package advisor

import (
	"encoding/json"
	"strings"

	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
)

// parseCategoryGroups parses the model's structured classification response.
// Returns nil when the response is not a valid category-group array, so the
// caller can degrade to empty.
func parseCategoryGroups(response string) []models.CategoryGroup {
	// Strip markdown code fences — models add them despite instructions
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var groups []models.CategoryGroup
	if err := json.Unmarshal([]byte(response), &groups); err != nil {
		return nil
	}

	out := make([]models.CategoryGroup, 0, len(groups))
	for _, g := range groups {
		if g.Category == "" {
			continue
		}
		if g.Stocks == nil {
			g.Stocks = []string{}
		}
		out = append(out, g)
	}
	return out
}
