package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for record keys and query parameters.
const DateLayout = "2006-01-02"

// SyncWindow is an inclusive range of calendar dates to sync.
type SyncWindow struct {
	Start time.Time
	End   time.Time
}

func (w SyncWindow) StartDate() string { return w.Start.Format(DateLayout) }
func (w SyncWindow) EndDate() string   { return w.End.Format(DateLayout) }

// Contains reports whether the YYYY-MM-DD date falls inside the window.
func (w SyncWindow) Contains(date string) bool {
	return date >= w.StartDate() && date <= w.EndDate()
}

// ResolveWindow picks the incremental sync range for a source. latest is the most recent
// stored date ("" when nothing is stored yet). The window runs from the day after latest
// (or defaultStart) through tomorrow, then reaches back lookbackDays to pick up late edits.
func ResolveWindow(latest string, defaultStart, today time.Time, lookbackDays int) (SyncWindow, error) {
	start := civil(defaultStart)
	if latest != "" {
		last, err := time.Parse(DateLayout, latest)
		if err != nil {
			return SyncWindow{}, fmt.Errorf("%w: latest date %q", ErrInvalidInput, latest)
		}
		start = last.AddDate(0, 0, 1)
	}

	end := civil(today).AddDate(0, 0, 1)
	if start.After(end) {
		start = end
	}
	return SyncWindow{Start: start.AddDate(0, 0, -lookbackDays), End: end}, nil
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
