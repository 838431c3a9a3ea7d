package api

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/guttosm/stockdash/internal/logger"
	"github.com/guttosm/stockdash/internal/service"
)

const dateLayout = "2006-01-02"

// tickerPattern accepts exchange symbols such as RY, RY.TO, BRK-B, ^GSPC or EURUSD=X.
var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9^][A-Za-z0-9.\-=^]{0,14}$`)

var registerOnce sync.Once

// DashboardQuery holds the query parameters shared by the dashboard endpoints
// and the HTML form.
type DashboardQuery struct {
	Ticker string `form:"ticker" binding:"required,ticker" example:"RY"`
	Start  string `form:"start" binding:"required,datetime=2006-01-02" example:"2022-01-02"`
	End    string `form:"end" binding:"required,datetime=2006-01-02" example:"2022-07-29"`
	Income string `form:"income" binding:"omitempty,numeric" example:"1000"`
	Window int    `form:"window" binding:"omitempty,min=1,max=1000" example:"100"`
}

// RegisterValidators adds the "ticker" tag to gin's validator engine. It is
// safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logger.L().Error().Msg("gin validator engine is not go-playground/validator; ticker tag unavailable")
			return
		}
		if err := v.RegisterValidation("ticker", func(fl validator.FieldLevel) bool {
			return tickerPattern.MatchString(fl.Field().String())
		}); err != nil {
			logger.L().Error().Err(err).Msg("register ticker validator")
		}
	})
}

// window parses Start and End and rejects an inverted range.
func (q DashboardQuery) window() (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, q.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := time.Parse(dateLayout, q.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end must not be before start")
	}
	return start, end, nil
}

// ToServiceQuery converts validated parameters to a service.Query.
func (q DashboardQuery) ToServiceQuery() (service.Query, error) {
	start, end, err := q.window()
	if err != nil {
		return service.Query{}, err
	}

	income := decimal.Zero
	if s := strings.TrimSpace(q.Income); s != "" {
		income, err = decimal.NewFromString(s)
		if err != nil {
			return service.Query{}, fmt.Errorf("invalid income: %w", err)
		}
		if income.IsNegative() {
			return service.Query{}, errors.New("income must not be negative")
		}
	}

	return service.Query{
		Ticker: strings.ToUpper(q.Ticker),
		Start:  start,
		End:    end,
		Income: income,
		Window: q.Window,
	}, nil
}
