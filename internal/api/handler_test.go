package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockdash/config"
	"github.com/guttosm/stockdash/internal/domain/dto"
	"github.com/guttosm/stockdash/internal/domain/models"
	"github.com/guttosm/stockdash/internal/marketdata"
	"github.com/guttosm/stockdash/internal/service"
)

type mockDashboardService struct {
	dash   *models.Dashboard
	series *models.PriceSeries
	err    error

	lastQuery service.Query
}

func (m *mockDashboardService) Build(_ context.Context, q service.Query) (*models.Dashboard, error) {
	m.lastQuery = q
	return m.dash, m.err
}

func (m *mockDashboardService) Prices(_ context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error) {
	m.lastQuery = service.Query{Ticker: ticker, Start: start, End: end}
	return m.series, m.err
}

var _ service.DashboardService = (*mockDashboardService)(nil)

var testDefaults = config.DashboardConfig{
	DefaultTicker:       "RY",
	DefaultStart:        "2022-01-02",
	DefaultEnd:          "2022-07-29",
	DefaultIncome:       "1000",
	MovingAverageWindow: 100,
}

func sampleDashboard() *models.Dashboard {
	d1 := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	ret := 0.01
	return &models.Dashboard{
		CompanyName:         "RY",
		Ticker:              "RY",
		Start:               time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC),
		End:                 time.Date(2022, 7, 29, 0, 0, 0, 0, time.UTC),
		MovingAverageWindow: 100,
		Bars:                []models.DailyBar{{Date: d1, Open: 1, High: 2, Low: 0.5, Close: 1.5, AdjClose: 1.4, Volume: 10}},
		MovingAverage:       []models.Point{{Date: d1}},
		Returns:             []models.Point{{Date: d1, Value: &ret}},
		Investment:          &models.Investment{AnnualIncome: 1000, DividendRate: 4.8, Shares: 208, MarketPrice: 98.51, Amount: 20490},
	}
}

func setupRouterWithMock(s service.DashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, testDefaults)
	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.GET("/", h.Page)
	v1 := r.Group("/api/v1")
	v1.GET("/dashboard", h.GetDashboard)
	v1.GET("/prices", h.GetPrices)
	return r
}

func TestGetDashboard_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockDashboardService
		query  string
		status int
		assert func(t *testing.T, svc *mockDashboardService, body []byte)
	}{
		{
			name:   "missing ticker",
			svc:    &mockDashboardService{},
			query:  "/api/v1/dashboard?start=2022-01-02&end=2022-07-29",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid ticker",
			svc:    &mockDashboardService{},
			query:  "/api/v1/dashboard?ticker=R%20Y&start=2022-01-02&end=2022-07-29",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid date format",
			svc:    &mockDashboardService{},
			query:  "/api/v1/dashboard?ticker=RY&start=2022/01/02&end=2022-07-29",
			status: http.StatusBadRequest,
		},
		{
			name:   "end before start",
			svc:    &mockDashboardService{},
			query:  "/api/v1/dashboard?ticker=RY&start=2022-07-29&end=2022-01-02",
			status: http.StatusBadRequest,
		},
		{
			name:   "income not a number",
			svc:    &mockDashboardService{},
			query:  "/api/v1/dashboard?ticker=RY&start=2022-01-02&end=2022-07-29&income=lots",
			status: http.StatusBadRequest,
		},
		{
			name:   "negative income",
			svc:    &mockDashboardService{},
			query:  "/api/v1/dashboard?ticker=RY&start=2022-01-02&end=2022-07-29&income=-5",
			status: http.StatusBadRequest,
		},
		{
			name:   "window out of range",
			svc:    &mockDashboardService{},
			query:  "/api/v1/dashboard?ticker=RY&start=2022-01-02&end=2022-07-29&window=5000",
			status: http.StatusBadRequest,
		},
		{
			name:   "ticker not found",
			svc:    &mockDashboardService{err: fmt.Errorf("daily bars: %w", marketdata.ErrTickerNotFound)},
			query:  "/api/v1/dashboard?ticker=ZZZZ&start=2022-01-02&end=2022-07-29",
			status: http.StatusNotFound,
		},
		{
			name:   "empty window",
			svc:    &mockDashboardService{err: service.ErrNoData},
			query:  "/api/v1/dashboard?ticker=RY&start=2030-01-01&end=2030-02-01",
			status: http.StatusNotFound,
		},
		{
			name:   "provider failure",
			svc:    &mockDashboardService{err: errors.New("yahoo down")},
			query:  "/api/v1/dashboard?ticker=RY&start=2022-01-02&end=2022-07-29",
			status: http.StatusBadGateway,
			assert: func(t *testing.T, _ *mockDashboardService, body []byte) {
				var out dto.ErrorResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Message != "failed to fetch market data" || out.ErrorDetails != "yahoo down" {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "success with defaults",
			svc:    &mockDashboardService{dash: sampleDashboard()},
			query:  "/api/v1/dashboard?ticker=ry&start=2022-01-02&end=2022-07-29",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockDashboardService, body []byte) {
				q := svc.lastQuery
				if q.Ticker != "RY" || q.Income.String() != "1000" || q.Window != 100 {
					t.Fatalf("unexpected query: %+v", q)
				}
				var out dto.DashboardResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.CompanyName != "RY" || out.Start != "2022-01-02" || len(out.Bars) != 1 || out.Bars[0].Date != "2022-01-03" {
					t.Fatalf("unexpected body: %+v", out)
				}
				if out.MovingAverage[0].Value != nil || out.Investment == nil || out.Investment.Amount != 20490 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "blank income and window fall back to defaults",
			svc:    &mockDashboardService{dash: sampleDashboard()},
			query:  "/api/v1/dashboard?ticker=RY&start=2022-01-02&end=2022-07-29&income=&window=",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockDashboardService, _ []byte) {
				q := svc.lastQuery
				if q.Income.String() != "1000" || q.Window != 100 {
					t.Fatalf("unexpected query: %+v", q)
				}
			},
		},
		{
			name:   "success with explicit income and window",
			svc:    &mockDashboardService{dash: sampleDashboard()},
			query:  "/api/v1/dashboard?ticker=RY&start=2022-01-02&end=2022-01-02&income=2500.50&window=20",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockDashboardService, _ []byte) {
				q := svc.lastQuery
				if q.Income.String() != "2500.5" || q.Window != 20 || !q.Start.Equal(q.End) {
					t.Fatalf("unexpected query: %+v", q)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetPrices_TableDriven(t *testing.T) {
	d := sampleDashboard()
	cases := []struct {
		name   string
		svc    *mockDashboardService
		query  string
		status int
	}{
		{name: "missing end", svc: &mockDashboardService{}, query: "/api/v1/prices?ticker=RY&start=2022-01-02", status: http.StatusBadRequest},
		{name: "no data", svc: &mockDashboardService{err: service.ErrNoData}, query: "/api/v1/prices?ticker=RY&start=2022-01-01&end=2022-01-01", status: http.StatusNotFound},
		{name: "success", svc: &mockDashboardService{series: &models.PriceSeries{Ticker: "RY", Bars: d.Bars}}, query: "/api/v1/prices?ticker=ry&start=2022-01-02&end=2022-01-04", status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.query, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.status != http.StatusOK {
				return
			}
			var out dto.PricesResponse
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if out.Ticker != "RY" || out.Count != 1 || out.Start != "2022-01-02" || out.End != "2022-01-04" {
				t.Fatalf("unexpected body: %+v", out)
			}
			if tc.svc.lastQuery.Ticker != "RY" {
				t.Fatalf("ticker must be upper-cased, got %q", tc.svc.lastQuery.Ticker)
			}
		})
	}
}

func TestTickerPattern(t *testing.T) {
	cases := map[string]bool{
		"RY":               true,
		"RY.TO":            true,
		"BRK-B":            true,
		"^GSPC":            true,
		"EURUSD=X":         true,
		"":                 false,
		"R Y":              false,
		"../etc":           false,
		"ABCDEFGHIJKLMNOP": false,
	}
	for in, want := range cases {
		if got := tickerPattern.MatchString(in); got != want {
			t.Fatalf("tickerPattern(%q)=%v, want %v", in, got, want)
		}
	}
}

// deadlineService reports the deadline of the context it is called with.
type deadlineService struct {
	mockDashboardService
	seen func(time.Time, bool)
}

func (d *deadlineService) Build(ctx context.Context, q service.Query) (*models.Dashboard, error) {
	d.seen(ctx.Deadline())
	return d.mockDashboardService.Build(ctx, q)
}
