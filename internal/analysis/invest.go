package analysis

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/guttosm/stockdash/internal/domain/models"
)

var (
	// ErrNoDividend is returned when the ticker has no positive dividend rate.
	ErrNoDividend = errors.New("ticker pays no dividend")
	// ErrNoMarketPrice is returned when no positive market price is known.
	ErrNoMarketPrice = errors.New("market price unavailable")
	// ErrNegativeIncome is returned for a negative target income.
	ErrNegativeIncome = errors.New("annual income must not be negative")
)

// Invest computes how many shares yield income per year at dividendRate,
// and what buying them costs at marketPrice.
//
//	shares = round(income / dividendRate)
//	amount = round(marketPrice * shares)
//
// Both roundings are half-to-even.
func Invest(income decimal.Decimal, dividendRate, marketPrice float64) (*models.Investment, error) {
	if income.IsNegative() {
		return nil, ErrNegativeIncome
	}
	if dividendRate <= 0 {
		return nil, ErrNoDividend
	}
	if marketPrice <= 0 {
		return nil, ErrNoMarketPrice
	}

	rate := decimal.NewFromFloat(dividendRate)
	price := decimal.NewFromFloat(marketPrice)

	shares := income.Div(rate).RoundBank(0)
	amount := price.Mul(shares).RoundBank(0)

	return &models.Investment{
		AnnualIncome: income.InexactFloat64(),
		DividendRate: dividendRate,
		Shares:       shares.IntPart(),
		MarketPrice:  marketPrice,
		Amount:       amount.IntPart(),
	}, nil
}
