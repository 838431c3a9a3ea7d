package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/stockdash/internal/analysis"
	"github.com/guttosm/stockdash/internal/domain/models"
	"github.com/guttosm/stockdash/internal/marketdata"
)

// ErrNoData is returned when the requested window holds no trading day.
var ErrNoData = errors.New("no data in the requested window")

// Query carries the validated inputs of one dashboard request.
// Start and End are inclusive calendar days. A zero Window selects
// analysis.DefaultMovingAverageWindow.
type Query struct {
	Ticker string
	Start  time.Time
	End    time.Time
	Income decimal.Decimal
	Window int
}

// DashboardService defines the business logic behind the dashboard.
type DashboardService interface {
	Build(ctx context.Context, q Query) (*models.Dashboard, error)
	Prices(ctx context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error)
}

type dashboardService struct {
	provider marketdata.Provider
}

func NewDashboardService(p marketdata.Provider) DashboardService {
	return &dashboardService{provider: p}
}

// Build fetches bars and ticker information concurrently, clips the bars to
// the window and derives every dashboard section from the clipped series.
// A ticker information failure only disables the investment section.
func (s *dashboardService) Build(ctx context.Context, q Query) (*models.Dashboard, error) {
	var (
		bars    []models.DailyBar
		info    *models.TickerInfo
		infoErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bars, err = s.provider.DailyBars(gctx, q.Ticker, q.Start, q.End)
		return err
	})
	g.Go(func() error {
		info, infoErr = s.provider.TickerInfo(gctx, q.Ticker)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("daily bars %s: %w", q.Ticker, err)
	}

	clipped := analysis.ClipToWindow(bars, q.Start, q.End)
	if len(clipped) == 0 {
		return nil, fmt.Errorf("%w: %s %s..%s", ErrNoData, q.Ticker,
			q.Start.Format(time.DateOnly), q.End.Format(time.DateOnly))
	}

	window := q.Window
	if window <= 0 {
		window = analysis.DefaultMovingAverageWindow
	}
	adj := analysis.AdjCloses(clipped)

	d := &models.Dashboard{
		CompanyName:         strings.ToUpper(q.Ticker),
		Ticker:              q.Ticker,
		Start:               analysis.Day(q.Start),
		End:                 analysis.Day(q.End),
		MovingAverageWindow: window,
		Bars:                clipped,
		Statistics:          analysis.Describe(clipped),
		MovingAverage:       analysis.ToPoints(clipped, analysis.RollingMean(adj, window)),
		Returns:             analysis.ToPoints(clipped, analysis.SimpleReturns(adj)),
	}

	switch {
	case infoErr != nil:
		d.InvestmentError = fmt.Sprintf("dividend information unavailable: %v", infoErr)
	case info == nil:
		d.InvestmentError = analysis.ErrNoDividend.Error()
	default:
		inv, err := analysis.Invest(q.Income, info.DividendRate, info.RegularMarketPrice)
		if err != nil {
			d.InvestmentError = err.Error()
		} else {
			d.Investment = inv
		}
	}

	return d, nil
}

// Prices returns the bars of ticker clipped to [start, end].
func (s *dashboardService) Prices(ctx context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error) {
	bars, err := s.provider.DailyBars(ctx, ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily bars %s: %w", ticker, err)
	}
	clipped := analysis.ClipToWindow(bars, start, end)
	if len(clipped) == 0 {
		return nil, fmt.Errorf("%w: %s %s..%s", ErrNoData, ticker,
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return &models.PriceSeries{Ticker: ticker, Bars: clipped}, nil
}
