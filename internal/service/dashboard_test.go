package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/stockdash/internal/analysis"
	"github.com/guttosm/stockdash/internal/domain/models"
	"github.com/guttosm/stockdash/internal/marketdata"
)

type stubProvider struct {
	bars    []models.DailyBar
	barsErr error
	info    *models.TickerInfo
	infoErr error

	infoCalls atomic.Int32
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) DailyBars(context.Context, string, time.Time, time.Time) ([]models.DailyBar, error) {
	return s.bars, s.barsErr
}

func (s *stubProvider) TickerInfo(context.Context, string) (*models.TickerInfo, error) {
	s.infoCalls.Add(1)
	return s.info, s.infoErr
}

func (s *stubProvider) Ping(context.Context) error { return nil }

func day(d int) time.Time { return time.Date(2022, 1, d, 0, 0, 0, 0, time.UTC) }

func fixtureBars() []models.DailyBar {
	closes := []float64{100, 102, 101, 105, 110}
	out := make([]models.DailyBar, len(closes))
	for i, c := range closes {
		out[i] = models.DailyBar{
			Date: day(3 + i), Open: c - 1, High: c + 1, Low: c - 2, Close: c, AdjClose: c, Volume: int64(1000 * (i + 1)),
		}
	}
	return out
}

func TestDashboardService_Build(t *testing.T) {
	p := &stubProvider{
		bars: fixtureBars(),
		info: &models.TickerInfo{Symbol: "ry", DividendRate: 4.8, RegularMarketPrice: 98.51},
	}
	svc := NewDashboardService(p)

	d, err := svc.Build(context.Background(), Query{
		Ticker: "ry",
		Start:  day(4),
		End:    day(6),
		Income: decimal.NewFromInt(1000),
		Window: 2,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.CompanyName != "RY" {
		t.Fatalf("company=%q", d.CompanyName)
	}
	if len(d.Bars) != 3 || !d.Bars[0].Date.Equal(day(4)) || !d.Bars[2].Date.Equal(day(6)) {
		t.Fatalf("bars not clipped: %+v", d.Bars)
	}
	if d.Statistics.Close.Count != 3 || d.Statistics.Close.Max != 105 {
		t.Fatalf("stats: %+v", d.Statistics.Close)
	}
	if d.MovingAverageWindow != 2 || d.MovingAverage[0].Value != nil || *d.MovingAverage[1].Value != 101.5 {
		t.Fatalf("moving average: %+v", d.MovingAverage)
	}
	if d.Returns[0].Value != nil || len(d.Returns) != 3 {
		t.Fatalf("returns: %+v", d.Returns)
	}
	if d.Investment == nil || d.Investment.Shares != 208 || d.Investment.Amount != 20490 || d.InvestmentError != "" {
		t.Fatalf("investment: %+v (%q)", d.Investment, d.InvestmentError)
	}
	if p.infoCalls.Load() != 1 {
		t.Fatalf("ticker info calls=%d", p.infoCalls.Load())
	}
}

func TestDashboardService_BuildDefaultsWindow(t *testing.T) {
	svc := NewDashboardService(&stubProvider{bars: fixtureBars(), info: &models.TickerInfo{DividendRate: 1, RegularMarketPrice: 1}})
	d, err := svc.Build(context.Background(), Query{Ticker: "X", Start: day(1), End: day(31)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.MovingAverageWindow != analysis.DefaultMovingAverageWindow {
		t.Fatalf("window=%d", d.MovingAverageWindow)
	}
	for _, pt := range d.MovingAverage {
		if pt.Value != nil {
			t.Fatalf("series shorter than the window must stay empty: %+v", d.MovingAverage)
		}
	}
}

func TestDashboardService_BuildInvestmentUnavailable(t *testing.T) {
	cases := []struct {
		name string
		p    *stubProvider
		want string
	}{
		{
			name: "info lookup failed",
			p:    &stubProvider{bars: fixtureBars(), infoErr: errors.New("quote down")},
			want: "dividend information unavailable: quote down",
		},
		{
			name: "no dividend",
			p:    &stubProvider{bars: fixtureBars(), info: &models.TickerInfo{RegularMarketPrice: 10}},
			want: analysis.ErrNoDividend.Error(),
		},
		{
			name: "no market price",
			p:    &stubProvider{bars: fixtureBars(), info: &models.TickerInfo{DividendRate: 1}},
			want: analysis.ErrNoMarketPrice.Error(),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := NewDashboardService(tc.p).Build(context.Background(), Query{
				Ticker: "X", Start: day(1), End: day(31), Income: decimal.NewFromInt(1000),
			})
			if err != nil {
				t.Fatalf("dashboard must still render: %v", err)
			}
			if d.Investment != nil || d.InvestmentError != tc.want {
				t.Fatalf("investment=%+v err=%q want %q", d.Investment, d.InvestmentError, tc.want)
			}
		})
	}
}

func TestDashboardService_BuildErrors(t *testing.T) {
	cases := []struct {
		name    string
		p       *stubProvider
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{
			name:    "ticker not found",
			p:       &stubProvider{barsErr: marketdata.ErrTickerNotFound},
			start:   day(1),
			end:     day(31),
			wantErr: marketdata.ErrTickerNotFound,
		},
		{
			name:    "window after last bar",
			p:       &stubProvider{bars: fixtureBars()},
			start:   day(20),
			end:     day(31),
			wantErr: ErrNoData,
		},
		{
			name:    "window before first bar",
			p:       &stubProvider{bars: fixtureBars()},
			start:   day(1),
			end:     day(2),
			wantErr: ErrNoData,
		},
		{
			name:    "empty provider answer",
			p:       &stubProvider{},
			start:   day(1),
			end:     day(31),
			wantErr: ErrNoData,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewDashboardService(tc.p)
			d, err := svc.Build(context.Background(), Query{Ticker: "X", Start: tc.start, End: tc.end})
			if d != nil || !errors.Is(err, tc.wantErr) {
				t.Fatalf("d=%+v err=%v want %v", d, err, tc.wantErr)
			}
			s, err := svc.Prices(context.Background(), "X", tc.start, tc.end)
			if s != nil || !errors.Is(err, tc.wantErr) {
				t.Fatalf("prices s=%+v err=%v want %v", s, err, tc.wantErr)
			}
		})
	}
}

func TestDashboardService_Prices(t *testing.T) {
	svc := NewDashboardService(&stubProvider{bars: fixtureBars()})
	s, err := svc.Prices(context.Background(), "RY", day(5), day(5))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Ticker != "RY" || len(s.Bars) != 1 || s.Bars[0].Close != 101 {
		t.Fatalf("unexpected series: %+v", s)
	}
}
