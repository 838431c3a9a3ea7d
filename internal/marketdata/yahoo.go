package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/guttosm/stockdash/internal/domain/models"
)

const (
	yahooUserAgent   = "Mozilla/5.0 (compatible; stockdash/1.0)"
	dividendLookback = 365 * 24 * time.Hour
)

// yahooChartResponse mirrors the subset of the v8 chart payload we read.
// Series values are pointers because Yahoo emits null for missing sessions.
type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *yahooError        `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooChartResult struct {
	Meta struct {
		Currency           string  `json:"currency"`
		Symbol             string  `json:"symbol"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		GMTOffset          int64   `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp []int64 `json:"timestamp"`
	Events    struct {
		Dividends map[string]struct {
			Amount float64 `json:"amount"`
			Date   int64   `json:"date"`
		} `json:"dividends"`
	} `json:"events"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

// YahooProvider reads the public Yahoo Finance chart API.
type YahooProvider struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewYahooProvider creates a provider targeting baseURL (e.g. https://query1.finance.yahoo.com).
func NewYahooProvider(baseURL string, client *http.Client) *YahooProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &YahooProvider{baseURL: baseURL, client: client, now: time.Now}
}

func (y *YahooProvider) Name() string { return "yahoo" }

// DailyBars downloads daily bars between start and end, both inclusive.
// Sessions of exchanges ahead of UTC open on the previous UTC day, so the
// request starts one day early and may return a bar before start.
func (y *YahooProvider) DailyBars(ctx context.Context, ticker string, start, end time.Time) ([]models.DailyBar, error) {
	params := url.Values{
		"period1":              {strconv.FormatInt(start.AddDate(0, 0, -1).Unix(), 10)},
		"period2":              {strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10)},
		"interval":             {"1d"},
		"includeAdjustedClose": {"true"},
	}
	res, err := y.chart(ctx, ticker, params)
	if err != nil {
		return nil, err
	}
	return res.bars(), nil
}

// TickerInfo returns the regular market price and the dividends paid over
// the trailing year as the annual dividend rate.
func (y *YahooProvider) TickerInfo(ctx context.Context, ticker string) (*models.TickerInfo, error) {
	params := url.Values{
		"range":    {"1y"},
		"interval": {"1d"},
		"events":   {"div"},
	}
	res, err := y.chart(ctx, ticker, params)
	if err != nil {
		return nil, err
	}

	cutoff := y.now().Add(-dividendLookback).Unix()
	var rate float64
	for _, d := range res.Events.Dividends {
		if d.Date >= cutoff {
			rate += d.Amount
		}
	}

	return &models.TickerInfo{
		Symbol:             ticker,
		Currency:           res.Meta.Currency,
		DividendRate:       rate,
		RegularMarketPrice: res.Meta.RegularMarketPrice,
	}, nil
}

// Ping checks that the chart API answers for a liquid ticker.
func (y *YahooProvider) Ping(ctx context.Context) error {
	_, err := y.chart(ctx, pingTicker, url.Values{"range": {"1d"}, "interval": {"1d"}})
	return err
}

func (y *YahooProvider) chart(ctx context.Context, ticker string, params url.Values) (*yahooChartResult, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.baseURL, url.PathEscape(ticker), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", yahooUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: read body: %w", ticker, err)
	}

	var data yahooChartResponse
	if jerr := json.Unmarshal(body, &data); jerr != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("yahoo chart %s: unexpected status %d", ticker, resp.StatusCode)
		}
		return nil, fmt.Errorf("yahoo chart %s: decode: %w", ticker, jerr)
	}

	if e := data.Chart.Error; e != nil {
		if e.Code == "Not Found" || resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s (%s)", ErrTickerNotFound, ticker, e.Description)
		}
		return nil, fmt.Errorf("yahoo chart %s: %s: %s", ticker, e.Code, e.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo chart %s: unexpected status %d", ticker, resp.StatusCode)
	}
	if len(data.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	return &data.Chart.Result[0], nil
}

// bars converts the columnar payload to DailyBars. Sessions without a close
// are dropped. When the adjusted close column is absent the close is used.
func (r *yahooChartResult) bars() []models.DailyBar {
	if len(r.Indicators.Quote) == 0 {
		return []models.DailyBar{}
	}
	q := r.Indicators.Quote[0]
	var adj []*float64
	if len(r.Indicators.AdjClose) > 0 {
		adj = r.Indicators.AdjClose[0].AdjClose
	}

	out := make([]models.DailyBar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		c := at(q.Close, i)
		if c == nil {
			continue
		}
		b := models.DailyBar{
			// shift to exchange local time so the session maps to its own calendar day
			Date:     time.Unix(ts+r.Meta.GMTOffset, 0).UTC(),
			Open:     deref(at(q.Open, i)),
			High:     deref(at(q.High, i)),
			Low:      deref(at(q.Low, i)),
			Close:    *c,
			AdjClose: *c,
		}
		if a := at(adj, i); a != nil {
			b.AdjClose = *a
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			b.Volume = *q.Volume[i]
		}
		out = append(out, b)
	}
	return normalize(out)
}

func at(s []*float64, i int) *float64 {
	if i < len(s) {
		return s[i]
	}
	return nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
