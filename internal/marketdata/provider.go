// Package marketdata fetches daily price series and quote information for a
// ticker from an external source (Yahoo Finance, Polygon.io or local CSV files).
package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/guttosm/stockdash/config"
	"github.com/guttosm/stockdash/internal/analysis"
	"github.com/guttosm/stockdash/internal/domain/models"
)

// ErrTickerNotFound is returned when the provider does not know the ticker.
var ErrTickerNotFound = errors.New("ticker not found")

// pingTicker is a liquid listing used by readiness probes.
const pingTicker = "SPY"

// Provider is a source of market data.
//
// DailyBars returns bars ascending by date with one bar per day. A provider
// may return more than [start, end]; callers clip the result.
type Provider interface {
	Name() string
	DailyBars(ctx context.Context, ticker string, start, end time.Time) ([]models.DailyBar, error)
	TickerInfo(ctx context.Context, ticker string) (*models.TickerInfo, error)
	Ping(ctx context.Context) error
}

// New builds the provider selected by cfg.Provider.
func New(cfg config.MarketDataConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderYahoo:
		return NewYahooProvider(cfg.YahooBaseURL, &http.Client{Timeout: cfg.HTTPTimeout}), nil
	case config.ProviderPolygon:
		return NewPolygonProvider(cfg.PolygonAPIKey)
	case config.ProviderCSV:
		return NewCSVProvider(cfg.CSVDataDir)
	default:
		return nil, fmt.Errorf("unknown market data provider %q", cfg.Provider)
	}
}

// normalize sorts bars by day and collapses duplicate days, keeping the
// last occurrence. Dates are truncated to midnight UTC.
func normalize(bars []models.DailyBar) []models.DailyBar {
	for i := range bars {
		bars[i].Date = analysis.Day(bars[i].Date)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Date.Equal(b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
