package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	pmodels "github.com/polygon-io/client-go/rest/models"

	"github.com/guttosm/stockdash/internal/domain/models"
)

const polygonAggsLimit = 50000

// polygonSortExDividendDate is not among the client's predefined Sort values.
const polygonSortExDividendDate pmodels.Sort = "ex_dividend_date"

type polygonAggsIterator interface {
	Next() bool
	Item() pmodels.Agg
	Err() error
}

type polygonDividendsIterator interface {
	Next() bool
	Item() pmodels.Dividend
	Err() error
}

// polygonAPI is the slice of the Polygon REST client used by PolygonProvider.
type polygonAPI interface {
	ListAggs(ctx context.Context, params *pmodels.ListAggsParams, opts ...pmodels.RequestOption) polygonAggsIterator
	ListDividends(ctx context.Context, params *pmodels.ListDividendsParams, opts ...pmodels.RequestOption) polygonDividendsIterator
	GetPreviousCloseAgg(ctx context.Context, params *pmodels.GetPreviousCloseAggParams, opts ...pmodels.RequestOption) (*pmodels.GetPreviousCloseAggResponse, error)
}

// polygonREST adapts *polygon.Client to polygonAPI.
type polygonREST struct {
	client *polygon.Client
}

func (p polygonREST) ListAggs(ctx context.Context, params *pmodels.ListAggsParams, opts ...pmodels.RequestOption) polygonAggsIterator {
	return p.client.ListAggs(ctx, params, opts...)
}

func (p polygonREST) ListDividends(ctx context.Context, params *pmodels.ListDividendsParams, opts ...pmodels.RequestOption) polygonDividendsIterator {
	return p.client.ListDividends(ctx, params, opts...)
}

func (p polygonREST) GetPreviousCloseAgg(ctx context.Context, params *pmodels.GetPreviousCloseAggParams, opts ...pmodels.RequestOption) (*pmodels.GetPreviousCloseAggResponse, error) {
	return p.client.GetPreviousCloseAgg(ctx, params, opts...)
}

// PolygonProvider reads daily aggregates, dividends and previous closes from Polygon.io.
type PolygonProvider struct {
	api polygonAPI
}

// NewPolygonProvider creates a provider authenticated with apiKey.
func NewPolygonProvider(apiKey string) (*PolygonProvider, error) {
	if apiKey == "" {
		return nil, errors.New("polygon: apiKey is required")
	}
	return &PolygonProvider{api: polygonREST{client: polygon.New(apiKey)}}, nil
}

func newPolygonProviderWithAPI(api polygonAPI) *PolygonProvider {
	return &PolygonProvider{api: api}
}

func (p *PolygonProvider) Name() string { return "polygon" }

// DailyBars lists unadjusted daily aggregates for the OHLCV columns and
// split/dividend adjusted aggregates for the adjusted close, merged by day.
func (p *PolygonProvider) DailyBars(ctx context.Context, ticker string, start, end time.Time) ([]models.DailyBar, error) {
	raw, err := p.aggs(ctx, ticker, start, end, false)
	if err != nil {
		return nil, err
	}
	adjusted, err := p.aggs(ctx, ticker, start, end, true)
	if err != nil {
		return nil, err
	}

	adjByDay := make(map[time.Time]float64, len(adjusted))
	for _, a := range adjusted {
		adjByDay[a.Date] = a.Close
	}

	for i := range raw {
		raw[i].AdjClose = raw[i].Close
		if v, ok := adjByDay[raw[i].Date]; ok {
			raw[i].AdjClose = v
		}
	}
	return raw, nil
}

func (p *PolygonProvider) aggs(ctx context.Context, ticker string, start, end time.Time, adjusted bool) ([]models.DailyBar, error) {
	params := pmodels.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   pmodels.Day,
		From:       pmodels.Millis(start),
		To:         pmodels.Millis(end.AddDate(0, 0, 1).Add(-time.Second)),
	}.WithAdjusted(adjusted).WithLimit(polygonAggsLimit)

	it := p.api.ListAggs(ctx, params)
	var out []models.DailyBar
	for it.Next() {
		agg := it.Item()
		out = append(out, models.DailyBar{
			Date:   time.Time(agg.Timestamp),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: int64(agg.Volume),
		})
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("polygon aggs %s: %w", ticker, err)
	}
	return normalize(out), nil
}

// TickerInfo combines the latest declared dividend (cash amount times yearly
// frequency) with the previous session close as market price.
func (p *PolygonProvider) TickerInfo(ctx context.Context, ticker string) (*models.TickerInfo, error) {
	prev, err := p.api.GetPreviousCloseAgg(ctx, pmodels.GetPreviousCloseAggParams{Ticker: ticker}.WithAdjusted(true))
	if err != nil {
		return nil, fmt.Errorf("polygon previous close %s: %w", ticker, err)
	}
	if prev == nil || len(prev.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	info := &models.TickerInfo{
		Symbol:             ticker,
		Currency:           "USD",
		RegularMarketPrice: prev.Results[0].Close,
	}

	params := pmodels.ListDividendsParams{}.
		WithTicker(pmodels.EQ, ticker).
		WithSort(polygonSortExDividendDate).
		WithOrder(pmodels.Desc).
		WithLimit(1)
	it := p.api.ListDividends(ctx, params)
	if it.Next() {
		d := it.Item()
		freq := d.Frequency
		if freq <= 0 {
			freq = 1
		}
		info.DividendRate = d.CashAmount * float64(freq)
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("polygon dividends %s: %w", ticker, err)
	}

	return info, nil
}

// Ping requests the previous close of a liquid ticker.
func (p *PolygonProvider) Ping(ctx context.Context) error {
	_, err := p.api.GetPreviousCloseAgg(ctx, &pmodels.GetPreviousCloseAggParams{Ticker: pingTicker})
	return err
}
