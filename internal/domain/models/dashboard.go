package models

import "time"

// ColumnStats is the descriptive summary of a single column, equivalent to
// one column of a pandas describe() table. Std is nil when Count < 2.
type ColumnStats struct {
	Count int      `json:"count"`
	Mean  float64  `json:"mean"`
	Std   *float64 `json:"std"`
	Min   float64  `json:"min"`
	P25   float64  `json:"p25"`
	P50   float64  `json:"p50"`
	P75   float64  `json:"p75"`
	Max   float64  `json:"max"`
}

// Statistics groups the per-column summaries of a clipped series.
type Statistics struct {
	Open     ColumnStats `json:"open"`
	High     ColumnStats `json:"high"`
	Low      ColumnStats `json:"low"`
	Close    ColumnStats `json:"close"`
	AdjClose ColumnStats `json:"adj_close"`
	Volume   ColumnStats `json:"volume"`
}

// Point is a dated value of a derived series. Value is nil where the series
// is undefined (warm-up of a moving average, first return).
type Point struct {
	Date  time.Time `json:"date"`
	Value *float64  `json:"value"`
}

// Investment is the amount needed today to earn AnnualIncome per year
// from dividends of the ticker.
type Investment struct {
	AnnualIncome float64 `json:"annual_income" example:"1000"`
	DividendRate float64 `json:"dividend_rate" example:"4.8"`
	Shares       int64   `json:"shares" example:"208"`
	MarketPrice  float64 `json:"market_price" example:"98.51"`
	Amount       int64   `json:"amount" example:"20490"`
}

// Dashboard is everything rendered for one request.
//
// Investment is nil when it could not be computed; InvestmentError then
// carries the reason shown to the user.
type Dashboard struct {
	CompanyName         string      `json:"company_name"`
	Ticker              string      `json:"ticker"`
	Start               time.Time   `json:"start"`
	End                 time.Time   `json:"end"`
	MovingAverageWindow int         `json:"moving_average_window"`
	Bars                []DailyBar  `json:"bars"`
	Statistics          Statistics  `json:"statistics"`
	MovingAverage       []Point     `json:"moving_average"`
	Returns             []Point     `json:"returns"`
	Investment          *Investment `json:"investment,omitempty"`
	InvestmentError     string      `json:"investment_error,omitempty"`
}
