package service

import (
	"context"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// First dates each source holds data for. Used when nothing is stored yet.
var (
	SleepDefaultStart    = time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	WorkDefaultStart     = time.Date(2024, 2, 18, 0, 0, 0, 0, time.UTC)
	FinancesDefaultStart = time.Date(2021, 1, 19, 0, 0, 0, 0, time.UTC)
	VitalsDefaultStart   = time.Date(2018, 12, 25, 0, 0, 0, 0, time.UTC)
)

// sleepLookbackDays re-fetches the last stored day; Oura revises it after waking.
const sleepLookbackDays = 1

var recordValidator = validator.New()

// windowResolver turns an optional explicit window into the range to sync for one user.
type windowResolver struct {
	defaultStart time.Time
	lookbackDays int
	latest       func(ctx context.Context, userID uuid.UUID) (string, error)
	now          func() time.Time
}

func (r windowResolver) resolve(ctx context.Context, userID uuid.UUID, explicit *domain.SyncWindow) (domain.SyncWindow, error) {
	if explicit != nil {
		if explicit.End.Before(explicit.Start) {
			return domain.SyncWindow{}, domain.ErrInvalidDateRange
		}
		return *explicit, nil
	}
	latest, err := r.latest(ctx, userID)
	if err != nil {
		return domain.SyncWindow{}, err
	}
	return domain.ResolveWindow(latest, r.defaultStart, r.now().UTC(), r.lookbackDays)
}
