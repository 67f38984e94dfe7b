// Package seed loads demo users with a month of synthetic sleep and work data.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/repository"
	"github.com/blaisecz/lifestats/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const seededDays = 30

type demoUser struct {
	user     domain.User
	seed     int64
	sessions bool
}

func demoUsers() []demoUser {
	la, warsaw := -420, 60
	return []demoUser{
		{user: domain.User{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "America/Los_Angeles", HomeOffsetMinutes: &la}, seed: 1, sessions: true},
		{user: domain.User{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "Europe/Warsaw", HomeOffsetMinutes: &warsaw}, seed: 2, sessions: true},
		{user: domain.User{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "UTC"}, seed: 3},
	}
}

// Run seeds demo data. Records are generated from fixed seeds and stored
// through the sync pipeline's replace semantics, so repeated runs converge.
func Run(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	sleepRepo := repository.NewSleepRepository(db)
	workRepo := repository.NewWorkRepository(db)
	integrationRepo := repository.NewIntegrationRepository(db)

	today := time.Now().UTC()
	window := domain.SyncWindow{
		Start: time.Date(today.Year(), today.Month(), today.Day()-seededDays, 0, 0, 0, 0, time.UTC),
		End:   time.Date(today.Year(), today.Month(), today.Day()+1, 0, 0, 0, 0, time.UTC),
	}

	for _, d := range demoUsers() {
		user := d.user
		if err := db.WithContext(ctx).Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
		if !d.sessions {
			continue
		}

		offset := 0
		if user.HomeOffsetMinutes != nil {
			offset = *user.HomeOffsetMinutes
		}
		src := newDemoSource(d.seed, offset, window)
		integration := domain.Integration{UserID: user.ID, Status: domain.IntegrationActive}

		sleepSync := service.NewSleepSyncService(src, sleepRepo, integrationRepo, log)
		integration.Type = domain.IntegrationOura
		sleepResult, err := sleepSync.SyncIntegration(ctx, integration, window)
		if err != nil {
			return fmt.Errorf("failed to seed sleep for %s: %w", user.ID, err)
		}

		workSync := service.NewWorkSyncService(src, workRepo, integrationRepo, log)
		integration.Type = domain.IntegrationRize
		workResult, err := workSync.SyncIntegration(ctx, integration, window)
		if err != nil {
			return fmt.Errorf("failed to seed work sessions for %s: %w", user.ID, err)
		}

		log.Info("Seeded user",
			zap.String("user_id", user.ID.String()),
			zap.Int("mains", sleepResult.Mains),
			zap.Int("naps", sleepResult.Naps),
			zap.Int("work_sessions", workResult.Sessions),
		)
	}

	log.Info("Seed completed")
	return nil
}
