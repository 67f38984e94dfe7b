package timebucket

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func utc(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestAggregate_FullLocalDay(t *testing.T) {
	agg := NewAggregator(DefaultFallbackOffsetMinutes)
	day := date(2024, 6, 10) // Monday

	m, err := agg.Aggregate(day, day, Offsets{"2024-06-10": 0}, []Interval{
		{Start: utc(2024, 6, 10, 0, 0), End: utc(2024, 6, 11, 0, 0)},
	})
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	d, ok := m.Day("2024-06-10")
	if !ok {
		t.Fatal("missing day 2024-06-10")
	}
	for h, v := range d.Minutes {
		if v != 60 {
			t.Errorf("hour %d = %v minutes, want 60", h, v)
		}
	}
	if d.Total() != 1440 {
		t.Errorf("day total = %v, want 1440", d.Total())
	}
	if m.DayOfWeek[time.Monday] != 1440 {
		t.Errorf("Monday total = %v, want 1440", m.DayOfWeek[time.Monday])
	}
	if len(m.FallbackDates) != 0 {
		t.Errorf("FallbackDates = %v, want none", m.FallbackDates)
	}
}

func TestAggregate_FullLocalDayWithOffset(t *testing.T) {
	agg := NewAggregator(0)
	day := date(2024, 6, 10)

	// Local midnight at UTC-7 is 07:00 UTC.
	m, err := agg.Aggregate(day, day, Offsets{"2024-06-10": -420}, []Interval{
		{Start: utc(2024, 6, 10, 7, 0), End: utc(2024, 6, 11, 7, 0)},
	})
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}
	for h, v := range m.Days[0].Minutes {
		if v != 60 {
			t.Errorf("hour %d = %v minutes, want 60", h, v)
		}
	}
}

func TestAggregate_CrossesLocalMidnight(t *testing.T) {
	agg := NewAggregator(0)

	// 22:30 to 01:15 local at UTC+2.
	session := Interval{Start: utc(2024, 6, 10, 20, 30), End: utc(2024, 6, 10, 23, 15)}
	offsets := Offsets{"2024-06-10": 120, "2024-06-11": 120}

	m, err := agg.Aggregate(date(2024, 6, 10), date(2024, 6, 11), offsets, []Interval{session})
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	first, _ := m.Day("2024-06-10")
	second, _ := m.Day("2024-06-11")

	if first.Minutes[22] != 30 || first.Minutes[23] != 60 {
		t.Errorf("2024-06-10 hours 22/23 = %v/%v, want 30/60", first.Minutes[22], first.Minutes[23])
	}
	if second.Minutes[0] != 60 || second.Minutes[1] != 15 {
		t.Errorf("2024-06-11 hours 0/1 = %v/%v, want 60/15", second.Minutes[0], second.Minutes[1])
	}
	if first.Total() != 90 || second.Total() != 75 {
		t.Errorf("day totals = %v/%v, want 90/75", first.Total(), second.Total())
	}
	if got, want := m.TotalMinutes(), session.End.Sub(session.Start).Minutes(); got != want {
		t.Errorf("TotalMinutes() = %v, want %v", got, want)
	}
	if m.HourOfDay[23] != 60 || m.HourOfDay[0] != 60 {
		t.Errorf("HourOfDay[23]/[0] = %v/%v", m.HourOfDay[23], m.HourOfDay[0])
	}
	if m.DayOfWeek[time.Monday] != 90 || m.DayOfWeek[time.Tuesday] != 75 {
		t.Errorf("DayOfWeek Mon/Tue = %v/%v", m.DayOfWeek[time.Monday], m.DayOfWeek[time.Tuesday])
	}
}

func TestAggregate_MissingOffsetUsesFallback(t *testing.T) {
	agg := NewAggregator(-420)

	// 16:00-17:30 UTC is 09:00-10:30 at UTC-7.
	m, err := agg.Aggregate(date(2024, 6, 10), date(2024, 6, 10), nil, []Interval{
		{Start: utc(2024, 6, 10, 16, 0), End: utc(2024, 6, 10, 17, 30)},
	})
	if err != nil {
		t.Fatalf("Aggregate() unexpected error: %v", err)
	}

	d := m.Days[0]
	if d.Offset != -420 {
		t.Errorf("offset = %d, want -420", d.Offset)
	}
	if d.Minutes[9] != 60 || d.Minutes[10] != 30 {
		t.Errorf("hours 9/10 = %v/%v, want 60/30", d.Minutes[9], d.Minutes[10])
	}
	if len(m.FallbackDates) != 1 || m.FallbackDates[0] != "2024-06-10" {
		t.Errorf("FallbackDates = %v", m.FallbackDates)
	}
}

func TestAggregate_OverlappingSessionsAreAdditive(t *testing.T) {
	agg := NewAggregator(0)
	s := Interval{Start: utc(2024, 6, 10, 9, 0), End: utc(2024, 6, 10, 10, 0)}

	m, err := agg.Aggregate(date(2024, 6, 10), date(2024, 6, 10), nil, []Interval{s, s})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Days[0].Minutes[9] != 120 {
		t.Errorf("hour 9 = %v, want 120", m.Days[0].Minutes[9])
	}
}

func TestAggregate_SessionOutsideRangeIgnored(t *testing.T) {
	agg := NewAggregator(0)

	m, err := agg.Aggregate(date(2024, 6, 10), date(2024, 6, 11), nil, []Interval{
		{Start: utc(2024, 6, 9, 9, 0), End: utc(2024, 6, 9, 10, 0)},
		{Start: utc(2024, 6, 12, 0, 0), End: utc(2024, 6, 12, 1, 0)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TotalMinutes() != 0 {
		t.Errorf("TotalMinutes() = %v, want 0", m.TotalMinutes())
	}
	if len(m.Days) != 2 {
		t.Errorf("len(Days) = %d, want 2", len(m.Days))
	}
}

func TestAggregate_HalfHourOffset(t *testing.T) {
	agg := NewAggregator(0)

	// 03:45-05:00 UTC is 09:15-10:30 at UTC+5:30.
	m, err := agg.Aggregate(date(2024, 6, 10), date(2024, 6, 10), Offsets{"2024-06-10": 330}, []Interval{
		{Start: utc(2024, 6, 10, 3, 45), End: utc(2024, 6, 10, 5, 0)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := m.Days[0]
	if d.Minutes[9] != 45 || d.Minutes[10] != 30 {
		t.Errorf("hours 9/10 = %v/%v, want 45/30", d.Minutes[9], d.Minutes[10])
	}
}

func TestAggregate_Hours(t *testing.T) {
	agg := NewAggregator(0)
	m, err := agg.Aggregate(date(2024, 6, 9), date(2024, 6, 9), nil, []Interval{
		{Start: utc(2024, 6, 9, 14, 0), End: utc(2024, 6, 9, 15, 30)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hours := m.HourOfDayHours()
	if hours[14] != 1 || hours[15] != 0.5 {
		t.Errorf("HourOfDayHours 14/15 = %v/%v", hours[14], hours[15])
	}
	if got := m.DayOfWeekHours()[time.Sunday]; got != 1.5 {
		t.Errorf("Sunday hours = %v, want 1.5", got)
	}
}

func TestAggregate_Errors(t *testing.T) {
	agg := NewAggregator(0)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		sessions []Interval
		wantErr  error
	}{
		{
			name:    "end date before start date",
			start:   date(2024, 6, 11),
			end:     date(2024, 6, 10),
			wantErr: domain.ErrInvalidDateRange,
		},
		{
			name:  "inverted session",
			start: date(2024, 6, 10),
			end:   date(2024, 6, 10),
			sessions: []Interval{
				{Start: utc(2024, 6, 10, 10, 0), End: utc(2024, 6, 10, 9, 0)},
			},
			wantErr: domain.ErrInvertedInterval,
		},
		{
			name:  "zero length session",
			start: date(2024, 6, 10),
			end:   date(2024, 6, 10),
			sessions: []Interval{
				{Start: utc(2024, 6, 10, 10, 0), End: utc(2024, 6, 10, 10, 0)},
			},
			wantErr: domain.ErrInvertedInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := agg.Aggregate(tt.start, tt.end, nil, tt.sessions)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Aggregate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
