package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockdash/config"
	"github.com/guttosm/stockdash/internal/api"
	"github.com/guttosm/stockdash/internal/marketdata"
	"github.com/guttosm/stockdash/internal/metrics"
	"github.com/guttosm/stockdash/internal/service"
)

// indirection for unit testing
var providerFactory = marketdata.New

// newProvider builds the configured market data provider wrapped with metrics.
func newProvider(cfg config.Config, m *metrics.Metrics) (marketdata.Provider, error) {
	p, err := providerFactory(cfg.MarketData)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize market data provider: %w", err)
	}
	return marketdata.Instrument(p, m), nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the market data provider selected by MARKETDATA_PROVIDER.
//   - Initializes the dashboard service and the HTTP handler layer.
//   - Configures the Gin router with the page, API, metrics and docs routes.
//   - Registers health and readiness probes.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig
	m := metrics.New()

	provider, err := newProvider(cfg, m)
	if err != nil {
		return nil, nil, err
	}

	svc := service.NewDashboardService(provider)
	handler := api.NewHandler(svc, cfg.Dashboard)
	router := api.NewRouter(handler, m, cfg)

	api.NewHealthHandler(provider.Ping).Register(router)

	// providers hold no resources beyond pooled HTTP connections
	cleanup := func() {}

	return router, cleanup, nil
}
