package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockdash/config"
	"github.com/guttosm/stockdash/internal/domain/dto"
	"github.com/guttosm/stockdash/internal/marketdata"
	"github.com/guttosm/stockdash/internal/middleware"
	"github.com/guttosm/stockdash/internal/service"
)

// Handler provides the HTTP handlers of the dashboard.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Call the dashboard service with the request context
//   - Translate domain results into response DTOs or the HTML page
//   - Map domain errors to HTTP status codes
type Handler struct {
	svc      service.DashboardService
	defaults config.DashboardConfig
}

// NewHandler constructs a Handler. defaults pre-fill the HTML form and
// supply the income and moving average window when a request omits them.
func NewHandler(svc service.DashboardService, defaults config.DashboardConfig) *Handler {
	RegisterValidators()
	return &Handler{svc: svc, defaults: defaults}
}

// apiQuery returns a query carrying only the optional defaults, so that
// ticker, start and end stay required on the JSON endpoints.
func (h *Handler) apiQuery() DashboardQuery {
	return DashboardQuery{Income: h.defaults.DefaultIncome, Window: h.defaults.MovingAverageWindow}
}

// formQuery returns a query with every default filled in.
func (h *Handler) formQuery() DashboardQuery {
	q := h.apiQuery()
	q.Ticker = h.defaults.DefaultTicker
	q.Start = h.defaults.DefaultStart
	q.End = h.defaults.DefaultEnd
	return q
}

// fillBlanks re-applies the income and window defaults after binding, since
// a submitted but empty field overwrites the pre-filled value.
func (h *Handler) fillBlanks(q *DashboardQuery) {
	if strings.TrimSpace(q.Income) == "" {
		q.Income = h.defaults.DefaultIncome
	}
	if q.Window == 0 {
		q.Window = h.defaults.MovingAverageWindow
	}
}

// statusFor maps a service error to an HTTP status and a client message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, marketdata.ErrTickerNotFound):
		return http.StatusNotFound, "ticker not found"
	case errors.Is(err, service.ErrNoData):
		return http.StatusNotFound, "no data found for the requested window"
	default:
		return http.StatusBadGateway, "failed to fetch market data"
	}
}

// GetDashboard handles GET /api/v1/dashboard requests.
//
// GetDashboard godoc
// @Summary      Get the stock dashboard
// @Description  Returns the daily bars clipped to [start, end], descriptive statistics, the moving average and simple returns of the adjusted close, and the investment needed to earn the target annual dividend income.
// @Tags         dashboard
// @Produce      json
// @Param        ticker  query     string  true   "Ticker symbol" example(RY)
// @Param        start   query     string  true   "First day, YYYY-MM-DD" example(2022-01-02)
// @Param        end     query     string  true   "Last day, YYYY-MM-DD" example(2022-07-29)
// @Param        income  query     number  false  "Target annual dividend income" example(1000)
// @Param        window  query     int     false  "Moving average window in trading days" example(100)
// @Success      200     {object}  dto.DashboardResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse      "Not Found"
// @Failure      502     {object}  dto.ErrorResponse      "Upstream Error"
// @Failure      500     {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	form := h.apiQuery()
	if err := c.ShouldBindQuery(&form); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	h.fillBlanks(&form)
	q, err := form.ToServiceQuery()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	d, err := h.svc.Build(c.Request.Context(), q)
	if err != nil {
		status, msg := statusFor(err)
		middleware.AbortWithError(c, status, msg, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(d))
}

// GetPrices handles GET /api/v1/prices requests.
//
// GetPrices godoc
// @Summary      Get daily bars
// @Description  Returns the daily OHLCV bars of the ticker clipped to [start, end], both inclusive.
// @Tags         dashboard
// @Produce      json
// @Param        ticker  query     string  true  "Ticker symbol" example(RY)
// @Param        start   query     string  true  "First day, YYYY-MM-DD" example(2022-01-02)
// @Param        end     query     string  true  "Last day, YYYY-MM-DD" example(2022-07-29)
// @Success      200     {object}  dto.PricesResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse   "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse   "Not Found"
// @Failure      502     {object}  dto.ErrorResponse   "Upstream Error"
// @Router       /api/v1/prices [get]
func (h *Handler) GetPrices(c *gin.Context) {
	var form DashboardQuery
	if err := c.ShouldBindQuery(&form); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	start, end, err := form.window()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	ticker := strings.ToUpper(form.Ticker)
	series, err := h.svc.Prices(c.Request.Context(), ticker, start, end)
	if err != nil {
		status, msg := statusFor(err)
		middleware.AbortWithError(c, status, msg, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPricesResponse(*series, form.Start, form.End))
}
