package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/stockdash/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestNewDashboardResponse_FormatsDatesAndNulls(t *testing.T) {
	v := 0.5
	d := &models.Dashboard{
		CompanyName:         "RY",
		Ticker:              "RY",
		Start:               day(2022, 1, 2),
		End:                 day(2022, 7, 29),
		MovingAverageWindow: 100,
		Bars:                []models.DailyBar{{Date: day(2022, 1, 3), Close: 10, AdjClose: 9, Volume: 5}},
		Returns: []models.Point{
			{Date: day(2022, 1, 3)},
			{Date: day(2022, 1, 4), Value: &v},
		},
		InvestmentError: "no dividend",
	}

	out := NewDashboardResponse(d)
	if out.Start != "2022-01-02" || out.End != "2022-07-29" {
		t.Fatalf("dates not formatted: %s %s", out.Start, out.End)
	}
	if len(out.Bars) != 1 || out.Bars[0].Date != "2022-01-03" || out.Bars[0].AdjClose != 9 {
		t.Fatalf("unexpected bars: %+v", out.Bars)
	}
	if len(out.Returns) != 2 || out.Returns[0].Value != nil || *out.Returns[1].Value != 0.5 {
		t.Fatalf("unexpected returns: %+v", out.Returns)
	}

	b, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(b)
	if !strings.Contains(body, `"value":null`) {
		t.Fatalf("undefined point must serialize as null: %s", body)
	}
	if strings.Contains(body, `"investment":`) {
		t.Fatalf("nil investment must be omitted: %s", body)
	}
}

func TestNewPricesResponse_Count(t *testing.T) {
	series := models.PriceSeries{Ticker: "AAPL", Bars: []models.DailyBar{{Date: day(2024, 1, 2)}, {Date: day(2024, 1, 3)}}}
	out := NewPricesResponse(series, "2024-01-01", "2024-01-31")
	if out.Count != 2 || out.Ticker != "AAPL" || out.Start != "2024-01-01" || out.End != "2024-01-31" {
		t.Fatalf("unexpected %+v", out)
	}
}
