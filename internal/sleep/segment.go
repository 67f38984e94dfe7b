// Package sleep classifies a day's sleep sessions and derives onset, offset
// and mid-sleep wake metrics from the 5-minute phase sequence.
package sleep

import (
	"github.com/blaisecz/lifestats/internal/domain"
)

const (
	// MinMainSleepSeconds is the total sleep a main-sleep candidate must exceed.
	MinMainSleepSeconds = 3 * 60 * 60

	mainWindowStartHour = 20
	mainWindowEndHour   = 3
)

// Classification is the outcome of segmenting one day's sessions.
type Classification struct {
	Main domain.RawSleepSession
	Naps []domain.RawSleepSession
}

// DayGroup holds the sessions the provider reported for one calendar day.
type DayGroup struct {
	Day      string
	Sessions []domain.RawSleepSession
}

// GroupByDay groups sessions by their provider day. Days keep first-seen
// order and sessions keep their input order within a day.
func GroupByDay(sessions []domain.RawSleepSession) []DayGroup {
	index := make(map[string]int)
	var groups []DayGroup
	for _, s := range sessions {
		i, ok := index[s.Day]
		if !ok {
			i = len(groups)
			index[s.Day] = i
			groups = append(groups, DayGroup{Day: s.Day})
		}
		groups[i].Sessions = append(groups[i].Sessions, s)
	}
	return groups
}

// Segment picks the main sleep of a day group and returns the rest as naps.
//
// A session is a main candidate when it starts between 20:00 and 03:00 in its
// own UTC offset and has more than three hours of sleep. The longest candidate
// wins; ties go to the earlier session. Without candidates the first session
// is main.
func Segment(sessions []domain.RawSleepSession) (Classification, error) {
	if len(sessions) == 0 {
		return Classification{}, domain.ErrEmptySessionGroup
	}
	if len(sessions) == 1 {
		return Classification{Main: sessions[0]}, nil
	}

	mainIdx := -1
	for i, s := range sessions {
		if !isMainCandidate(s) {
			continue
		}
		if mainIdx < 0 || s.TotalSleepDuration > sessions[mainIdx].TotalSleepDuration {
			mainIdx = i
		}
	}
	if mainIdx < 0 {
		mainIdx = 0
	}

	naps := make([]domain.RawSleepSession, 0, len(sessions)-1)
	for i, s := range sessions {
		if i != mainIdx {
			naps = append(naps, s)
		}
	}
	return Classification{Main: sessions[mainIdx], Naps: naps}, nil
}

func isMainCandidate(s domain.RawSleepSession) bool {
	hour := s.BedtimeStart.Hour()
	inWindow := hour >= mainWindowStartHour || hour < mainWindowEndHour
	return inWindow && s.TotalSleepDuration > MinMainSleepSeconds
}
