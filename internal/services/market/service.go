// Package market fetches, normalizes, and ranks the daily exchange feeds
package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hchs200771/100-up-and-down-stocks/internal/common"
	"github.com/hchs200771/100-up-and-down-stocks/internal/interfaces"
	"github.com/hchs200771/100-up-and-down-stocks/internal/models"
)

// ErrNoData signals that no rows survived normalization, as distinct
// from a transport or parse failure.
var ErrNoData = errors.New("no market data available")

// fetchTimeout bounds the combined two-source fetch.
const fetchTimeout = 20 * time.Second

// Service implements MarketService
type Service struct {
	twse   interfaces.TWSEClient
	tpex   interfaces.TPEXClient
	logger *common.Logger
}

// NewService creates a new market service
func NewService(twse interfaces.TWSEClient, tpex interfaces.TPEXClient, logger *common.Logger) *Service {
	return &Service{
		twse:   twse,
		tpex:   tpex,
		logger: logger,
	}
}

// GetMarketMovers fetches both exchange feeds concurrently, normalizes them,
// and ranks the combined set. Both fetches must succeed — there is no partial
// degrade when one exchange is unreachable.
func (s *Service) GetMarketMovers(ctx context.Context) (*models.MarketSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var (
		twseReport *models.TWSEDailyResponse
		tpexReport *models.TPEXDailyResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report, err := s.twse.GetDailyQuotes(gctx)
		if err != nil {
			return fmt.Errorf("twse fetch: %w", err)
		}
		twseReport = report
		return nil
	})
	g.Go(func() error {
		report, err := s.tpex.GetDailyQuotes(gctx)
		if err != nil {
			return fmt.Errorf("tpex fetch: %w", err)
		}
		tpexReport = report
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	listed, listedSkipped := normalizeTWSE(twseReport)
	otc, otcSkipped := normalizeTPEX(tpexReport)

	s.logger.Debug().
		Int("twse_stocks", len(listed)).
		Int("twse_skipped", listedSkipped).
		Int("tpex_stocks", len(otc)).
		Int("tpex_skipped", otcSkipped).
		Msg("Normalized exchange feeds")

	// TWSE first, TPEx second — ranking ties and map collisions depend on this order.
	combined := make([]models.Stock, 0, len(listed)+len(otc))
	combined = append(combined, listed...)
	combined = append(combined, otc...)

	if len(combined) == 0 {
		return nil, ErrNoData
	}

	return buildSnapshot(combined, time.Now()), nil
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
