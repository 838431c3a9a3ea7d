package marketdata

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/stockdash/internal/domain/models"
)

const (
	csvDateLayout = "2006-01-02"
	csvSuffix     = ".csv"
	infoSuffix    = ".info.json"
)

// expectedCSVHeaders enforces the column order of Yahoo Finance history exports.
// If the header doesn't match EXACTLY (order + count), loading fails.
var expectedCSVHeaders = []string{
	"Date",
	"Open",
	"High",
	"Low",
	"Close",
	"Adj Close",
	"Volume",
}

// CSVProvider serves daily bars from <dir>/<TICKER>.csv files and quote
// information from optional <dir>/<TICKER>.info.json files. It returns whole
// files and leaves date clipping to the caller.
type CSVProvider struct {
	dir string
}

// csvInfo is the layout of a <TICKER>.info.json file.
type csvInfo struct {
	Currency           string  `json:"currency"`
	DividendRate       float64 `json:"dividend_rate"`
	RegularMarketPrice float64 `json:"regular_market_price"`
}

// NewCSVProvider creates a provider reading from dir, which must exist.
func NewCSVProvider(dir string) (*CSVProvider, error) {
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("csv data dir: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("csv data dir %s: not a directory", dir)
	}
	return &CSVProvider{dir: dir}, nil
}

func (p *CSVProvider) Name() string { return "csv" }

// DailyBars loads the whole history file of ticker. start and end are ignored.
func (p *CSVProvider) DailyBars(ctx context.Context, ticker string, _, _ time.Time) ([]models.DailyBar, error) {
	path, err := p.path(ticker, csvSuffix)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
		}
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	bars, err := parseBars(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return normalize(bars), nil
}

// TickerInfo reads <TICKER>.info.json. A missing file is not an error: the
// ticker is then reported with no dividend and no market price.
func (p *CSVProvider) TickerInfo(_ context.Context, ticker string) (*models.TickerInfo, error) {
	info := &models.TickerInfo{Symbol: ticker}

	path, err := p.path(ticker, infoSuffix)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return info, nil
		}
		return nil, fmt.Errorf("read info: %w", err)
	}

	var ci csvInfo
	if err := json.Unmarshal(raw, &ci); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", filepath.Base(path), err)
	}
	info.Currency = ci.Currency
	info.DividendRate = ci.DividendRate
	info.RegularMarketPrice = ci.RegularMarketPrice
	return info, nil
}

// Ping verifies the data directory is still readable.
func (p *CSVProvider) Ping(_ context.Context) error {
	_, err := os.ReadDir(p.dir)
	return err
}

// path resolves the file of ticker, refusing anything that could escape dir.
func (p *CSVProvider) path(ticker, suffix string) (string, error) {
	if ticker == "" || strings.ContainsAny(ticker, `/\`) || strings.Contains(ticker, "..") {
		return "", fmt.Errorf("%w: %q", ErrTickerNotFound, ticker)
	}
	return filepath.Join(p.dir, ticker+suffix), nil
}

// parseBars validates the header strictly and converts every row.
//
// It fails on:
//   - header not matching expected order/length
//   - rows with a different column count
//   - malformed dates or numbers
//
// It tolerates:
//   - rows whose price cells are "null" or empty (non-trading placeholders); they are skipped
func parseBars(ctx context.Context, src io.Reader) ([]models.DailyBar, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1 // checked explicitly for clearer errors
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedCSVHeaders) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedCSVHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) != expectedCSVHeaders[i] {
			return nil, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedCSVHeaders[i], h)
		}
	}

	var out []models.DailyBar
	lineNumber := 1

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedCSVHeaders) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedCSVHeaders), len(rec))
		}

		bar, ok, err := recordToBar(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if ok {
			out = append(out, bar)
		}
	}

	return out, nil
}

// recordToBar converts one row. ok is false for placeholder rows without a close.
//
// Column order:
//
//	0 Date      → Date (YYYY-MM-DD)
//	1 Open      → Open
//	2 High      → High
//	3 Low       → Low
//	4 Close     → Close (required, "null"/empty skips the row)
//	5 Adj Close → AdjClose (empty → Close)
//	6 Volume    → Volume (may be written as a float, e.g. "1262400.0")
func recordToBar(rec []string) (models.DailyBar, bool, error) {
	var b models.DailyBar

	d, err := time.Parse(csvDateLayout, strings.TrimSpace(rec[0]))
	if err != nil {
		return b, false, fmt.Errorf("invalid Date: %v", err)
	}
	b.Date = d

	closeCell := strings.TrimSpace(rec[4])
	if isNullCell(closeCell) {
		return b, false, nil
	}

	fields := []struct {
		name string
		cell string
		dst  *float64
	}{
		{"Open", rec[1], &b.Open},
		{"High", rec[2], &b.High},
		{"Low", rec[3], &b.Low},
		{"Close", closeCell, &b.Close},
		{"Adj Close", rec[5], &b.AdjClose},
	}
	for _, f := range fields {
		s := strings.TrimSpace(f.cell)
		if isNullCell(s) {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return b, false, fmt.Errorf("invalid %s: %v", f.name, err)
		}
		*f.dst = v
	}
	if isNullCell(strings.TrimSpace(rec[5])) {
		b.AdjClose = b.Close
	}

	if s := strings.TrimSpace(rec[6]); !isNullCell(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return b, false, fmt.Errorf("invalid Volume: %v", err)
		}
		b.Volume = int64(v)
	}

	return b, true, nil
}

func isNullCell(s string) bool {
	return s == "" || strings.EqualFold(s, "null")
}
