// Package analysis holds the pure computations behind the dashboard:
// clipping a daily series to a date window, descriptive statistics,
// moving average, simple returns and dividend based investment sizing.
package analysis

import (
	"sort"
	"time"

	"github.com/guttosm/stockdash/internal/domain/models"
)

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClipToWindow returns the contiguous run of bars whose date falls in the
// inclusive window [start, end], compared at day granularity.
//
// bars must be ascending by date. The first kept bar is the first one dated
// on or after start, the last kept bar is the last one dated on or before end.
// When no bar satisfies the window (start after the last bar, end before the
// first bar, a gap covering the whole window, or start > end) the result is an
// empty, non-nil slice.
//
// The returned slice shares its backing array with bars and is capped so that
// appending to it never overwrites bars.
func ClipToWindow(bars []models.DailyBar, start, end time.Time) []models.DailyBar {
	start, end = Day(start), Day(end)
	if len(bars) == 0 || end.Before(start) {
		return []models.DailyBar{}
	}

	first := sort.Search(len(bars), func(i int) bool {
		return !Day(bars[i].Date).Before(start)
	})
	stop := sort.Search(len(bars), func(i int) bool {
		return Day(bars[i].Date).After(end)
	})
	if first >= stop {
		return []models.DailyBar{}
	}

	return bars[first:stop:stop]
}
