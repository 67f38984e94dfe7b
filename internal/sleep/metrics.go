package sleep

import (
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
)

// SlotDuration is the span covered by one phase code.
const SlotDuration = 5 * time.Minute

// Metrics are the sleep bounds and wake time derived from a phase sequence.
type Metrics struct {
	SleepStart           time.Time
	SleepEnd             time.Time
	MidsleepAwakeMinutes int
}

// Derive computes sleep onset, sleep offset and mid-sleep awake minutes.
//
// Leading and trailing awake slots move sleep_start forward and sleep_end
// back. Between them only awake runs of two or more slots count, so a single
// 5-minute blip adds nothing.
func Derive(bedtimeStart, bedtimeEnd time.Time, phases string) (Metrics, error) {
	if !bedtimeEnd.After(bedtimeStart) {
		return Metrics{}, domain.ErrInvertedInterval
	}
	if err := checkPhaseLength(bedtimeEnd.Sub(bedtimeStart), len(phases)); err != nil {
		return Metrics{}, err
	}

	leading := 0
	for leading < len(phases) && phases[leading] == domain.PhaseAwake {
		leading++
	}
	if leading == len(phases) {
		return Metrics{}, domain.ErrFullyAwakeSession
	}

	trailing := 0
	for trailing < len(phases) && phases[len(phases)-1-trailing] == domain.PhaseAwake {
		trailing++
	}

	return Metrics{
		SleepStart:           bedtimeStart.Add(time.Duration(leading) * SlotDuration),
		SleepEnd:             bedtimeEnd.Add(-time.Duration(trailing) * SlotDuration),
		MidsleepAwakeMinutes: midsleepAwakeMinutes(phases[leading : len(phases)-trailing]),
	}, nil
}

func midsleepAwakeMinutes(core string) int {
	total, streak := 0, 0
	flush := func() {
		if streak > 1 {
			total += streak * int(SlotDuration/time.Minute)
		}
		streak = 0
	}
	for i := 0; i < len(core); i++ {
		if core[i] == domain.PhaseAwake {
			streak++
			continue
		}
		flush()
	}
	flush()
	return total
}

// checkPhaseLength accepts one code per started or completed slot.
func checkPhaseLength(span time.Duration, n int) error {
	full := int(span / SlotDuration)
	started := full
	if span%SlotDuration != 0 {
		started++
	}
	if n != full && n != started {
		return fmt.Errorf("%w: got %d codes for a %s span", domain.ErrMalformedPhaseSequence, n, span)
	}
	return nil
}
