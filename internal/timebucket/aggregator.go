// Package timebucket spreads UTC time spans over local calendar days and
// clock hours using a per-day UTC offset.
package timebucket

import (
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
)

// DefaultFallbackOffsetMinutes is used for dates with no known offset (UTC-7).
const DefaultFallbackOffsetMinutes = -420

// Interval is a half-open [Start, End) span in UTC.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Offsets maps a local date (YYYY-MM-DD) to its UTC offset in minutes.
type Offsets map[string]int

// DayBuckets holds the minutes recorded in each local hour of one date.
type DayBuckets struct {
	Date    string
	Weekday time.Weekday
	Offset  int
	Minutes [24]float64
}

// Total is the sum of the date's hourly buckets.
func (d DayBuckets) Total() float64 {
	var sum float64
	for _, m := range d.Minutes {
		sum += m
	}
	return sum
}

// Matrix is the result of one aggregation. All values are minutes.
type Matrix struct {
	Days []DayBuckets
	// HourOfDay sums every date's bucket for the same local hour.
	HourOfDay [24]float64
	// DayOfWeek is indexed by time.Weekday, so Sunday is 0.
	DayOfWeek [7]float64
	// FallbackDates lists dates whose offset was not supplied.
	FallbackDates []string
}

// Day returns the buckets for a date.
func (m *Matrix) Day(date string) (DayBuckets, bool) {
	for _, d := range m.Days {
		if d.Date == date {
			return d, true
		}
	}
	return DayBuckets{}, false
}

// TotalMinutes is the minutes summed over every weekday.
func (m *Matrix) TotalMinutes() float64 {
	var sum float64
	for _, v := range m.DayOfWeek {
		sum += v
	}
	return sum
}

// HourOfDayHours converts the hour-of-day totals to hours.
func (m *Matrix) HourOfDayHours() [24]float64 {
	var out [24]float64
	for i, v := range m.HourOfDay {
		out[i] = v / 60
	}
	return out
}

// DayOfWeekHours converts the weekday totals to hours.
func (m *Matrix) DayOfWeekHours() [7]float64 {
	var out [7]float64
	for i, v := range m.DayOfWeek {
		out[i] = v / 60
	}
	return out
}

// Aggregator buckets intervals into local days and hours.
type Aggregator struct {
	FallbackOffsetMinutes int
}

// NewAggregator uses fallbackOffsetMinutes for dates with no known offset.
func NewAggregator(fallbackOffsetMinutes int) *Aggregator {
	return &Aggregator{FallbackOffsetMinutes: fallbackOffsetMinutes}
}

// Aggregate buckets sessions into every local date from startDate to endDate
// inclusive. Only the calendar date of startDate and endDate is used.
//
// Each date spans [local midnight, next local midnight) shifted to UTC by the
// date's offset. Overlapping sessions are counted independently. Callers pass
// sessions already narrowed to the UTC range the local dates can cover.
func (a *Aggregator) Aggregate(startDate, endDate time.Time, offsets Offsets, sessions []Interval) (*Matrix, error) {
	first := civilDate(startDate)
	last := civilDate(endDate)
	if last.Before(first) {
		return nil, fmt.Errorf("%w: %s > %s", domain.ErrInvalidDateRange,
			first.Format(domain.DateLayout), last.Format(domain.DateLayout))
	}
	for i, s := range sessions {
		if !s.End.After(s.Start) {
			return nil, fmt.Errorf("%w: session %d [%s, %s)", domain.ErrInvertedInterval,
				i, s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339))
		}
	}

	m := &Matrix{}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		date := d.Format(domain.DateLayout)
		offset, ok := offsets[date]
		if !ok {
			offset = a.FallbackOffsetMinutes
			m.FallbackDates = append(m.FallbackDates, date)
		}

		day := DayBuckets{Date: date, Weekday: d.Weekday(), Offset: offset}
		shift := time.Duration(offset) * time.Minute
		dayStart := d.Add(-shift)
		dayEnd := d.AddDate(0, 0, 1).Add(-shift)

		for _, s := range sessions {
			from := latest(s.Start, dayStart)
			to := earliest(s.End, dayEnd)
			if !from.Before(to) {
				continue
			}
			addHourSlices(&day, &m.HourOfDay, from.Add(shift).UTC(), to.Add(shift).UTC())
		}

		m.DayOfWeek[day.Weekday] += day.Total()
		m.Days = append(m.Days, day)
	}
	return m, nil
}

// addHourSlices splits a local-clock span (carried in UTC) at hour boundaries.
func addHourSlices(day *DayBuckets, hourOfDay *[24]float64, from, to time.Time) {
	for cur := from; cur.Before(to); {
		next := cur.Truncate(time.Hour).Add(time.Hour)
		if next.After(to) {
			next = to
		}
		minutes := next.Sub(cur).Minutes()
		h := cur.Hour()
		day.Minutes[h] += minutes
		hourOfDay[h] += minutes
		cur = next
	}
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
