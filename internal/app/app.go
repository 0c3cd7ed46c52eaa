// Package app wires configuration, clients, and services together
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hchs200771/100-up-and-down-stocks/internal/clients/gemini"
	"github.com/hchs200771/100-up-and-down-stocks/internal/clients/tpex"
	"github.com/hchs200771/100-up-and-down-stocks/internal/clients/twse"
	"github.com/hchs200771/100-up-and-down-stocks/internal/common"
	"github.com/hchs200771/100-up-and-down-stocks/internal/interfaces"
	"github.com/hchs200771/100-up-and-down-stocks/internal/services/advisor"
	"github.com/hchs200771/100-up-and-down-stocks/internal/services/market"
)

// App holds all initialized clients and services shared by the server.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	TWSEClient     interfaces.TWSEClient
	TPEXClient     interfaces.TPEXClient
	GeminiClient   interfaces.GeminiClient
	MarketService  interfaces.MarketService
	AdvisorService interfaces.AdvisorService
	StartupTime    time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, API clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration - check provided path, TWSTOCK_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("TWSTOCK_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "twstock.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/twstock.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	twseClient := twse.NewClient(
		twse.WithBaseURL(config.Clients.TWSE.BaseURL),
		twse.WithLogger(logger),
		twse.WithRateLimit(config.Clients.TWSE.RateLimit),
		twse.WithTimeout(config.Clients.TWSE.GetTimeout()),
	)

	tpexClient := tpex.NewClient(
		tpex.WithBaseURL(config.Clients.TPEX.BaseURL),
		tpex.WithLogger(logger),
		tpex.WithRateLimit(config.Clients.TPEX.RateLimit),
		tpex.WithTimeout(config.Clients.TPEX.GetTimeout()),
	)

	a := &App{
		Config:        config,
		Logger:        logger,
		TWSEClient:    twseClient,
		TPEXClient:    tpexClient,
		MarketService: market.NewService(twseClient, tpexClient, logger),
		StartupTime:   startupStart,
	}

	// The advisor is optional — without a key the classify/summary endpoints
	// respond 503 and the rest of the server works normally.
	geminiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		logger.Warn().Msg("Gemini API key not configured - classification and summary will be unavailable")
	} else {
		geminiClient, err := gemini.NewClient(context.Background(), geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			a.GeminiClient = geminiClient
			a.AdvisorService = advisor.NewService(geminiClient, logger)
		}
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}
