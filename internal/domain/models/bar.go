package models

import "time"

// DailyBar represents one trading day of a price series.
//
// Date is normalized to midnight UTC and is the key of the series:
// bars are kept strictly ascending by Date with one bar per trading day.
// Non-trading days are simply absent.
type DailyBar struct {
	Date     time.Time `json:"date" example:"2022-01-03T00:00:00Z"`
	Open     float64   `json:"open" example:"101.73"`
	High     float64   `json:"high" example:"103.12"`
	Low      float64   `json:"low" example:"101.5"`
	Close    float64   `json:"close" example:"102.96"`
	AdjClose float64   `json:"adj_close" example:"96.41"`
	Volume   int64     `json:"volume" example:"1262400"`
}

// PriceSeries is the ordered list of daily bars for a ticker.
type PriceSeries struct {
	Ticker string     `json:"ticker" example:"RY"`
	Bars   []DailyBar `json:"bars"`
}

// TickerInfo holds the quote fields needed for investment sizing.
//
// Fields:
//   - DividendRate: annual cash dividend per share (0 when the security pays none).
//   - RegularMarketPrice: latest regular session price (0 when unknown).
type TickerInfo struct {
	Symbol             string  `json:"symbol"`
	Currency           string  `json:"currency,omitempty"`
	DividendRate       float64 `json:"dividend_rate"`
	RegularMarketPrice float64 `json:"regular_market_price"`
}
