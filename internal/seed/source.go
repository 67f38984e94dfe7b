package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/sleep"
	"github.com/blaisecz/lifestats/internal/source/rize"
)

// demoSource stands in for the Oura and Rize clients during seeding.
type demoSource struct {
	sleep     []domain.RawSleepSession
	sessions  []rize.Session
	summaries []rize.Bucket
}

func newDemoSource(seed int64, offsetMinutes int, window domain.SyncWindow) *demoSource {
	rng := rand.New(rand.NewSource(seed))
	loc := time.FixedZone("", offsetMinutes*60)
	src := &demoSource{}

	for day := window.Start; day.Before(window.End); day = day.AddDate(0, 0, 1) {
		date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

		bedtime := date.Add(-90*time.Minute + time.Duration(rng.Intn(12))*sleep.SlotDuration)
		src.sleep = append(src.sleep, demoSleep(rng, date, bedtime, 84+rng.Intn(18), "long_sleep"))

		if rng.Intn(3) == 0 {
			napStart := date.Add(14*time.Hour + time.Duration(rng.Intn(6))*sleep.SlotDuration)
			src.sleep = append(src.sleep, demoSleep(rng, date, napStart, 4+rng.Intn(5), "rest"))
		}

		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		src.addWorkday(rng, date)
	}
	return src
}

// demoSleep builds a session of the given number of 5-minute slots.
func demoSleep(rng *rand.Rand, date, bedtime time.Time, slots int, kind string) domain.RawSleepSession {
	var phases strings.Builder
	phases.WriteString("44")
	for phases.Len() < slots-1 {
		if rng.Intn(25) == 0 {
			phases.WriteString("44")
			continue
		}
		phases.WriteByte(byte('1' + rng.Intn(3)))
	}
	phases.WriteByte(domain.PhaseAwake)
	seq := phases.String()[:slots]

	awake := strings.Count(seq, string(rune(domain.PhaseAwake)))
	slot := int(sleep.SlotDuration / time.Second)
	deep := strings.Count(seq, "1") * slot
	light := strings.Count(seq, "2") * slot
	rem := strings.Count(seq, "3") * slot
	hr := 52 + rng.Float64()*8
	latency := 2 * slot

	return domain.RawSleepSession{
		ID:                 fmt.Sprintf("seed-%s-%s", date.Format(domain.DateLayout), bedtime.Format("1504")),
		Day:                date.Format(domain.DateLayout),
		BedtimeStart:       bedtime,
		BedtimeEnd:         bedtime.Add(time.Duration(slots) * sleep.SlotDuration),
		TotalSleepDuration: (slots - awake) * slot,
		TimeInBed:          slots * slot,
		AwakeTime:          awake * slot,
		SleepPhase5Min:     seq,
		Type:               kind,
		DeepSleepDuration:  &deep,
		LightSleepDuration: &light,
		RemSleepDuration:   &rem,
		AverageHeartRate:   &hr,
		Latency:            &latency,
	}
}

func (s *demoSource) addWorkday(rng *rand.Rand, date time.Time) {
	blocks := []struct {
		name       string
		start, end time.Duration
	}{
		{"am", 9*time.Hour + time.Duration(rng.Intn(30))*time.Minute, 12 * time.Hour},
		{"pm", 13 * time.Hour, 17*time.Hour + time.Duration(rng.Intn(60))*time.Minute},
	}

	var tracked float64
	for _, b := range blocks {
		start, end := date.Add(b.start), date.Add(b.end)
		s.sessions = append(s.sessions, rize.Session{
			ID:        fmt.Sprintf("seed-%s-%s", date.Format(domain.DateLayout), b.name),
			Title:     "Focus",
			Type:      "focus",
			Source:    "seed",
			StartTime: start,
			EndTime:   end,
		})
		tracked += end.Sub(start).Seconds()
	}

	s.summaries = append(s.summaries, rize.Bucket{
		Date:        date.Format("2006-01-02 15:04:05 -0700"),
		Wday:        date.Weekday().String(),
		FocusTime:   tracked * 0.8,
		BreakTime:   3600,
		MeetingTime: tracked * 0.2,
		TrackedTime: tracked,
		WorkHours:   tracked + 3600,
	})
}

func (s *demoSource) FetchSleep(ctx context.Context, token string, start, end time.Time) ([]domain.RawSleepSession, error) {
	return s.sleep, nil
}

func (s *demoSource) FetchSessions(ctx context.Context, token string, start, end time.Time) ([]rize.Session, error) {
	return s.sessions, nil
}

func (s *demoSource) FetchSummaries(ctx context.Context, token string, start, end time.Time) ([]rize.Bucket, error) {
	return s.summaries, nil
}
