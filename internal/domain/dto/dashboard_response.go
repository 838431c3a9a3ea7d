package dto

import "github.com/guttosm/stockdash/internal/domain/models"

const dateLayout = "2006-01-02"

// BarResponse is a daily bar as exposed by the API, with the date as YYYY-MM-DD.
type BarResponse struct {
	Date     string  `json:"date" example:"2022-01-03"`
	Open     float64 `json:"open" example:"101.73"`
	High     float64 `json:"high" example:"103.12"`
	Low      float64 `json:"low" example:"101.5"`
	Close    float64 `json:"close" example:"102.96"`
	AdjClose float64 `json:"adj_close" example:"96.41"`
	Volume   int64   `json:"volume" example:"1262400"`
}

// PointResponse is a dated value of a derived series; Value is null where undefined.
type PointResponse struct {
	Date  string   `json:"date" example:"2022-01-04"`
	Value *float64 `json:"value"`
}

// PricesResponse represents the JSON structure returned by GET /api/v1/prices.
type PricesResponse struct {
	Ticker string        `json:"ticker" example:"RY"`
	Start  string        `json:"start" example:"2022-01-02"`
	End    string        `json:"end" example:"2022-07-29"`
	Count  int           `json:"count" example:"143"`
	Bars   []BarResponse `json:"bars"`
}

// DashboardResponse represents the JSON structure returned by GET /api/v1/dashboard.
//
// Fields match the API contract and may differ from internal domain models.
type DashboardResponse struct {
	CompanyName         string             `json:"company_name" example:"RY"`
	Ticker              string             `json:"ticker" example:"RY"`
	Start               string             `json:"start" example:"2022-01-02"`
	End                 string             `json:"end" example:"2022-07-29"`
	MovingAverageWindow int                `json:"moving_average_window" example:"100"`
	Bars                []BarResponse      `json:"bars"`
	Statistics          models.Statistics  `json:"statistics"`
	MovingAverage       []PointResponse    `json:"moving_average"`
	Returns             []PointResponse    `json:"returns"`
	Investment          *models.Investment `json:"investment,omitempty"`
	InvestmentError     string             `json:"investment_error,omitempty" example:"RY pays no dividend"`
}

// NewBarResponses converts domain bars to their API shape.
func NewBarResponses(bars []models.DailyBar) []BarResponse {
	out := make([]BarResponse, len(bars))
	for i, b := range bars {
		out[i] = BarResponse{
			Date:     b.Date.Format(dateLayout),
			Open:     b.Open,
			High:     b.High,
			Low:      b.Low,
			Close:    b.Close,
			AdjClose: b.AdjClose,
			Volume:   b.Volume,
		}
	}
	return out
}

func newPointResponses(points []models.Point) []PointResponse {
	out := make([]PointResponse, len(points))
	for i, p := range points {
		out[i] = PointResponse{Date: p.Date.Format(dateLayout), Value: p.Value}
	}
	return out
}

// NewPricesResponse builds the body of GET /api/v1/prices.
func NewPricesResponse(series models.PriceSeries, start, end string) PricesResponse {
	return PricesResponse{
		Ticker: series.Ticker,
		Start:  start,
		End:    end,
		Count:  len(series.Bars),
		Bars:   NewBarResponses(series.Bars),
	}
}

// NewDashboardResponse builds the body of GET /api/v1/dashboard.
func NewDashboardResponse(d *models.Dashboard) DashboardResponse {
	return DashboardResponse{
		CompanyName:         d.CompanyName,
		Ticker:              d.Ticker,
		Start:               d.Start.Format(dateLayout),
		End:                 d.End.Format(dateLayout),
		MovingAverageWindow: d.MovingAverageWindow,
		Bars:                NewBarResponses(d.Bars),
		Statistics:          d.Statistics,
		MovingAverage:       newPointResponses(d.MovingAverage),
		Returns:             newPointResponses(d.Returns),
		Investment:          d.Investment,
		InvestmentError:     d.InvestmentError,
	}
}
