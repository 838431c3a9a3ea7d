package api

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockdash/internal/domain/dto"
	"github.com/guttosm/stockdash/internal/domain/models"
)

const pageTemplate = "dashboard.html"

//go:embed templates/*.html
var templatesFS embed.FS

type glossaryEntry struct {
	Term       string
	Definition string
}

var glossary = []glossaryEntry{
	{"Ticker", "The symbol used on a stock exchange to identify a given security. " +
		"AMZN is Amazon's ticker and RY is the Royal Bank of Canada's. Use it as the symbol input."},
	{"Close Price", "The price at which the stock stopped trading during regular hours. " +
		"A close above the previous close is an upward movement, a close below it a downward movement."},
	{"Adjusted Close", "The close price corrected for dividends and splits, so that prices on different days compare fairly."},
	{"Trading Volume", "The number of shares traded during the day. Volume spikes can indicate the strength of a trend, " +
		"whether the price is moving up or down."},
	{"Rolling Mean (Moving Average)", "An average over a fixed trailing window that is recomputed every day. " +
		"It smooths out noise in the price chart and can act as support or resistance."},
	{"Return Rate", "The day over day change of the adjusted close, adjusted close divided by the previous adjusted close minus one. " +
		"Its mean is the expected return of holding the stock."},
}

// statsTable lays out models.Statistics the way describe() prints it:
// one row per statistic, one column per series.
type statsTable struct {
	Columns []string
	Rows    []statsRow
}

type statsRow struct {
	Label string
	Cells []string
}

func newStatsTable(s models.Statistics) statsTable {
	cols := []models.ColumnStats{s.Open, s.High, s.Low, s.Close, s.AdjClose, s.Volume}
	t := statsTable{Columns: []string{"Open", "High", "Low", "Close", "Adj Close", "Volume"}}

	row := func(label string, cell func(models.ColumnStats) string) {
		r := statsRow{Label: label, Cells: make([]string, len(cols))}
		for i, c := range cols {
			r.Cells[i] = cell(c)
		}
		t.Rows = append(t.Rows, r)
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

	row("count", func(c models.ColumnStats) string { return strconv.Itoa(c.Count) })
	row("mean", func(c models.ColumnStats) string { return f(c.Mean) })
	row("std", func(c models.ColumnStats) string {
		if c.Std == nil {
			return "NaN"
		}
		return f(*c.Std)
	})
	row("min", func(c models.ColumnStats) string { return f(c.Min) })
	row("25%", func(c models.ColumnStats) string { return f(c.P25) })
	row("50%", func(c models.ColumnStats) string { return f(c.P50) })
	row("75%", func(c models.ColumnStats) string { return f(c.P75) })
	row("max", func(c models.ColumnStats) string { return f(c.Max) })
	return t
}

type pageData struct {
	Form      DashboardQuery
	Glossary  []glossaryEntry
	Error     string
	Dashboard *dto.DashboardResponse
	Stats     statsTable
}

// Templates parses the embedded HTML templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// Page handles GET /, the HTML dashboard. Missing form fields fall back to
// the configured defaults; errors are rendered inside the page.
func (h *Handler) Page(c *gin.Context) {
	form := h.formQuery()
	data := pageData{Glossary: glossary}

	render := func(status int) {
		data.Form = form
		c.HTML(status, pageTemplate, data)
	}

	if err := c.ShouldBindQuery(&form); err != nil {
		_ = c.Error(err)
		data.Error = "Please check your inputs: " + err.Error()
		render(http.StatusBadRequest)
		return
	}
	h.fillBlanks(&form)
	q, err := form.ToServiceQuery()
	if err != nil {
		_ = c.Error(err)
		data.Error = "Please check your inputs: " + err.Error()
		render(http.StatusBadRequest)
		return
	}

	d, err := h.svc.Build(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		status, msg := statusFor(err)
		data.Error = msg + " (" + q.Ticker + ", " + form.Start + " to " + form.End + ")"
		render(status)
		return
	}

	resp := dto.NewDashboardResponse(d)
	data.Dashboard = &resp
	data.Stats = newStatsTable(d.Statistics)
	render(http.StatusOK)
}
