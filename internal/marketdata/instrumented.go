package marketdata

import (
	"context"
	"time"

	"github.com/guttosm/stockdash/internal/domain/models"
	"github.com/guttosm/stockdash/internal/logger"
	"github.com/guttosm/stockdash/internal/metrics"
)

// instrumented decorates a Provider with Prometheus metrics and debug logs.
type instrumented struct {
	next Provider
	m    *metrics.Metrics
}

// Instrument wraps p so that every call is counted, timed and logged.
func Instrument(p Provider, m *metrics.Metrics) Provider {
	return &instrumented{next: p, m: m}
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) observe(op, ticker string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	i.m.ProviderCalls.WithLabelValues(i.next.Name(), op, outcome).Inc()
	i.m.ProviderDuration.WithLabelValues(i.next.Name(), op).Observe(time.Since(start).Seconds())

	lg := logger.Component("marketdata")
	ev := lg.Debug()
	if err != nil {
		ev = lg.Warn().Err(err)
	}
	ev.Str("provider", i.next.Name()).
		Str("operation", op).
		Str("ticker", ticker).
		Dur("elapsed", time.Since(start)).
		Msg("provider call")
}

func (i *instrumented) DailyBars(ctx context.Context, ticker string, start, end time.Time) ([]models.DailyBar, error) {
	t0 := time.Now()
	bars, err := i.next.DailyBars(ctx, ticker, start, end)
	i.observe("daily_bars", ticker, t0, err)
	return bars, err
}

func (i *instrumented) TickerInfo(ctx context.Context, ticker string) (*models.TickerInfo, error) {
	t0 := time.Now()
	info, err := i.next.TickerInfo(ctx, ticker)
	i.observe("ticker_info", ticker, t0, err)
	return info, err
}

func (i *instrumented) Ping(ctx context.Context) error {
	t0 := time.Now()
	err := i.next.Ping(ctx)
	i.observe("ping", "", t0, err)
	return err
}
