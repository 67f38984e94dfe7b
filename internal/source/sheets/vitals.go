package sheets

import (
	"fmt"
	"strconv"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const wakeUpLayout = "3:04:05 PM"

// ParseVitals converts Vitals sheet rows dated inside the window. Rows with no values are dropped.
func ParseVitals(rows [][]string, window domain.SyncWindow, userID uuid.UUID, logger *zap.Logger) ([]domain.VitalsEntry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	h := newHeader(rows[0])
	if err := h.require("Date"); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}

	var entries []domain.VitalsEntry
	for n, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		date, err := parseDate(h.cell(row, "Date"))
		if err != nil {
			logger.Warn("Skipping vitals row", zap.Int("row", n+2), zap.Error(err))
			continue
		}
		day := date.Format(domain.DateLayout)
		if !window.Contains(day) {
			continue
		}

		entry := domain.VitalsEntry{
			UserID:       userID,
			Date:         day,
			WakeUpTime:   wakeUpTime(date, h.cell(row, "Wake Up"), logger),
			SleepMinutes: parseInt(h.cell(row, "Sleep Mins")),
			Weight:       parseFloat(h.cell(row, "Weight")),
			NapMinutes:   parseInt(h.cell(row, "Nap (today)")),
			Drinks:       parseInt(h.cell(row, "Drinks")),
		}
		if entry.Empty() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func wakeUpTime(date time.Time, value string, logger *zap.Logger) *time.Time {
	if value == "" {
		return nil
	}
	clock, err := time.Parse(wakeUpLayout, value)
	if err != nil {
		logger.Warn("Invalid wake up time",
			zap.String("date", date.Format(domain.DateLayout)),
			zap.String("value", value),
		)
		return nil
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
	return &t
}

func parseFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseInt truncates decimal input, so "7.9" reads as 7.
func parseInt(value string) *int {
	f := parseFloat(value)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}
