package sleep

import (
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
)

// Normalized is a session reduced to UTC instants plus the single UTC offset
// reported at bedtime_start.
type Normalized struct {
	Day          string
	BedtimeStart time.Time
	Measures     domain.SleepMeasures
}

// Normalize derives the custom metrics and converts every timestamp to UTC.
// The offset of bedtime_start is reused for the whole session.
func Normalize(s domain.RawSleepSession) (Normalized, error) {
	m, err := Derive(s.BedtimeStart, s.BedtimeEnd, s.SleepPhase5Min)
	if err != nil {
		return Normalized{}, fmt.Errorf("session %s: %w", s.ID, err)
	}

	_, offsetSeconds := s.BedtimeStart.Zone()

	return Normalized{
		Day:          s.Day,
		BedtimeStart: s.BedtimeStart.UTC(),
		Measures: domain.SleepMeasures{
			BedtimeEnd:         s.BedtimeEnd.UTC(),
			SleepStart:         m.SleepStart.UTC(),
			SleepEnd:           m.SleepEnd.UTC(),
			TimezoneOffset:     offsetSeconds / 60,
			TotalSleepDuration: s.TotalSleepDuration,
			Latency:            s.Latency,
			TimeInBed:          s.TimeInBed,
			SleepAwakeTime:     s.AwakeTime,
			MidsleepAwakeTime:  m.MidsleepAwakeMinutes,
			DeepSleepDuration:  intOrZero(s.DeepSleepDuration),
			LightSleepDuration: intOrZero(s.LightSleepDuration),
			RemSleepDuration:   intOrZero(s.RemSleepDuration),
			RestlessPeriods:    intOrZero(s.RestlessPeriods),
			AverageHeartRate:   s.AverageHeartRate,
			AverageHRV:         s.AverageHRV,
		},
	}, nil
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
