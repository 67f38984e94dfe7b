package sleep

import (
	"errors"
	"testing"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
)

var cest = time.FixedZone("CEST", 2*60*60)

func session(id string, startHour, startMin int, sleepHours float64) domain.RawSleepSession {
	start := time.Date(2024, 6, 9, startHour, startMin, 0, 0, cest)
	if startHour < 12 {
		start = start.AddDate(0, 0, 1)
	}
	return domain.RawSleepSession{
		ID:                 id,
		Day:                "2024-06-10",
		BedtimeStart:       start,
		BedtimeEnd:         start.Add(time.Duration(sleepHours*float64(time.Hour)) + time.Hour),
		TotalSleepDuration: int(sleepHours * 3600),
	}
}

func ids(sessions []domain.RawSleepSession) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		sessions []domain.RawSleepSession
		wantMain string
		wantNaps []string
	}{
		{
			name:     "single short afternoon nap is main",
			sessions: []domain.RawSleepSession{session("A", 13, 0, 0.5)},
			wantMain: "A",
			wantNaps: []string{},
		},
		{
			name: "overnight sleep beats afternoon nap",
			sessions: []domain.RawSleepSession{
				session("A", 22, 0, 8),
				session("B", 13, 0, 0.5),
			},
			wantMain: "A",
			wantNaps: []string{"B"},
		},
		{
			name: "greater duration wins among candidates",
			sessions: []domain.RawSleepSession{
				session("A", 21, 0, 5),
				session("B", 22, 0, 7),
			},
			wantMain: "B",
			wantNaps: []string{"A"},
		},
		{
			name: "tie keeps first seen",
			sessions: []domain.RawSleepSession{
				session("A", 21, 0, 6),
				session("B", 23, 0, 6),
			},
			wantMain: "A",
			wantNaps: []string{"B"},
		},
		{
			name: "start before 3am counts",
			sessions: []domain.RawSleepSession{
				session("A", 15, 0, 1),
				session("B", 2, 59, 4),
			},
			wantMain: "B",
			wantNaps: []string{"A"},
		},
		{
			name: "start at 3am is outside the window",
			sessions: []domain.RawSleepSession{
				session("A", 15, 0, 1),
				session("B", 3, 0, 6),
			},
			wantMain: "A",
			wantNaps: []string{"B"},
		},
		{
			name: "exactly three hours is not enough",
			sessions: []domain.RawSleepSession{
				session("A", 14, 0, 1),
				session("B", 22, 0, 3),
			},
			wantMain: "A",
			wantNaps: []string{"B"},
		},
		{
			name: "no candidate falls back to first",
			sessions: []domain.RawSleepSession{
				session("A", 14, 0, 1),
				session("B", 16, 0, 2),
				session("C", 18, 0, 1),
			},
			wantMain: "A",
			wantNaps: []string{"B", "C"},
		},
		{
			name: "naps keep input order around the main",
			sessions: []domain.RawSleepSession{
				session("A", 13, 0, 1),
				session("B", 21, 0, 4),
				session("C", 15, 0, 1),
				session("D", 23, 0, 7),
				session("E", 17, 0, 1),
			},
			wantMain: "D",
			wantNaps: []string{"A", "B", "C", "E"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Segment(tt.sessions)
			if err != nil {
				t.Fatalf("Segment() unexpected error: %v", err)
			}
			if got.Main.ID != tt.wantMain {
				t.Errorf("Segment() main = %s, want %s", got.Main.ID, tt.wantMain)
			}
			if gotNaps := ids(got.Naps); !equalIDs(gotNaps, tt.wantNaps) {
				t.Errorf("Segment() naps = %v, want %v", gotNaps, tt.wantNaps)
			}
		})
	}
}

func TestSegment_Empty(t *testing.T) {
	_, err := Segment(nil)
	if !errors.Is(err, domain.ErrEmptySessionGroup) {
		t.Errorf("Segment(nil) error = %v, want ErrEmptySessionGroup", err)
	}
}

func TestSegment_UsesSessionOwnOffset(t *testing.T) {
	// 22:30 in Los Angeles is 05:30 UTC; only the local hour matters.
	pdt := time.FixedZone("PDT", -7*60*60)
	start := time.Date(2024, 6, 9, 22, 30, 0, 0, pdt)
	sessions := []domain.RawSleepSession{
		{ID: "nap", Day: "2024-06-10", BedtimeStart: time.Date(2024, 6, 10, 14, 0, 0, 0, pdt), TotalSleepDuration: 1800},
		{ID: "night", Day: "2024-06-10", BedtimeStart: start, TotalSleepDuration: 7 * 3600},
	}

	got, err := Segment(sessions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Main.ID != "night" {
		t.Errorf("main = %s, want night", got.Main.ID)
	}
}

func TestGroupByDay(t *testing.T) {
	mk := func(id, day string) domain.RawSleepSession {
		return domain.RawSleepSession{ID: id, Day: day}
	}
	in := []domain.RawSleepSession{
		mk("a", "2024-06-11"),
		mk("b", "2024-06-10"),
		mk("c", "2024-06-11"),
		mk("d", "2024-06-12"),
		mk("e", "2024-06-10"),
	}

	groups := GroupByDay(in)

	wantDays := []string{"2024-06-11", "2024-06-10", "2024-06-12"}
	wantIDs := [][]string{{"a", "c"}, {"b", "e"}, {"d"}}
	if len(groups) != len(wantDays) {
		t.Fatalf("GroupByDay() returned %d groups, want %d", len(groups), len(wantDays))
	}
	for i, g := range groups {
		if g.Day != wantDays[i] {
			t.Errorf("group %d day = %s, want %s", i, g.Day, wantDays[i])
		}
		if got := ids(g.Sessions); !equalIDs(got, wantIDs[i]) {
			t.Errorf("group %d sessions = %v, want %v", i, got, wantIDs[i])
		}
	}
}
