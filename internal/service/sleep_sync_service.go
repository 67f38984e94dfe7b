package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/repository"
	"github.com/blaisecz/lifestats/internal/sleep"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// SleepFetcher reads raw sleep sessions from the wearable provider.
type SleepFetcher interface {
	FetchSleep(ctx context.Context, token string, start, end time.Time) ([]domain.RawSleepSession, error)
}

// SleepSyncResult counts what one integration sync did.
type SleepSyncResult struct {
	Fetched int
	Mains   int
	Naps    int
	Skipped int
}

type SleepSyncService interface {
	// Sync runs every active Oura integration. A nil window syncs incrementally per user.
	Sync(ctx context.Context, window *domain.SyncWindow) error
	SyncIntegration(ctx context.Context, integration domain.Integration, window domain.SyncWindow) (*SleepSyncResult, error)
}

type sleepSyncService struct {
	fetcher      SleepFetcher
	sleepRepo    repository.SleepRepository
	integrations repository.IntegrationRepository
	windows      windowResolver
	logger       *zap.Logger
	now          func() time.Time
}

func NewSleepSyncService(fetcher SleepFetcher, sleepRepo repository.SleepRepository, integrations repository.IntegrationRepository, logger *zap.Logger) SleepSyncService {
	return &sleepSyncService{
		fetcher:      fetcher,
		sleepRepo:    sleepRepo,
		integrations: integrations,
		windows: windowResolver{
			defaultStart: SleepDefaultStart,
			lookbackDays: sleepLookbackDays,
			latest:       sleepRepo.LatestDate,
			now:          time.Now,
		},
		logger: logger.Named("sleep-sync"),
		now:    time.Now,
	}
}

func (s *sleepSyncService) Sync(ctx context.Context, window *domain.SyncWindow) error {
	tracer := otel.Tracer("lifestats/sleep-sync")
	ctx, span := tracer.Start(ctx, "SleepSyncService.Sync")
	defer span.End()

	integrations, err := s.integrations.ListActive(ctx, domain.IntegrationOura)
	if err != nil {
		return fmt.Errorf("list oura integrations: %w", err)
	}
	span.SetAttributes(attribute.Int("integrations.count", len(integrations)))

	var errs []error
	for _, integration := range integrations {
		log := s.logger.With(zap.String("user_id", integration.UserID.String()))

		result, err := s.syncOne(ctx, integration, window)
		status := domain.SyncStatusSuccess
		if err != nil {
			status = domain.SyncStatusFailed
			log.Error("Sleep sync failed", zap.Error(err))
			errs = append(errs, fmt.Errorf("user %s: %w", integration.UserID, err))
		} else {
			log.Info("Sleep sync completed",
				zap.Int("fetched", result.Fetched),
				zap.Int("mains", result.Mains),
				zap.Int("naps", result.Naps),
				zap.Int("skipped", result.Skipped),
			)
		}

		if err := s.integrations.UpdateSyncStatus(ctx, integration.ID, status, s.now().UTC()); err != nil {
			log.Warn("Failed to record sync status", zap.Error(err))
		}
	}
	return errors.Join(errs...)
}

func (s *sleepSyncService) syncOne(ctx context.Context, integration domain.Integration, explicit *domain.SyncWindow) (*SleepSyncResult, error) {
	window, err := s.windows.resolve(ctx, integration.UserID, explicit)
	if err != nil {
		return nil, err
	}
	return s.SyncIntegration(ctx, integration, window)
}

func (s *sleepSyncService) SyncIntegration(ctx context.Context, integration domain.Integration, window domain.SyncWindow) (*SleepSyncResult, error) {
	tracer := otel.Tracer("lifestats/sleep-sync")
	ctx, span := tracer.Start(ctx, "SleepSyncService.SyncIntegration",
		trace.WithAttributes(
			attribute.String("user.id", integration.UserID.String()),
			attribute.String("window.start", window.StartDate()),
			attribute.String("window.end", window.EndDate()),
		),
	)
	defer span.End()

	log := s.logger.With(
		zap.String("user_id", integration.UserID.String()),
		zap.String("start_date", window.StartDate()),
		zap.String("end_date", window.EndDate()),
	)

	raw, err := s.fetcher.FetchSleep(ctx, integration.AccessToken, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	result := &SleepSyncResult{Fetched: len(raw)}
	if len(raw) == 0 {
		log.Info("No sleep data returned")
		return result, nil
	}

	valid := make([]domain.RawSleepSession, 0, len(raw))
	for _, r := range raw {
		if err := recordValidator.Struct(r); err != nil {
			log.Warn("Skipping invalid sleep session", zap.String("session_id", r.ID), zap.Error(err))
			result.Skipped++
			continue
		}
		if !window.Contains(r.Day) {
			continue
		}
		valid = append(valid, r)
	}

	var mains []domain.SleepRecord
	var naps []domain.NapRecord
	for _, group := range sleep.GroupByDay(valid) {
		class, err := sleep.Segment(group.Sessions)
		if err != nil {
			log.Warn("Skipping sleep day", zap.String("day", group.Day), zap.Error(err))
			result.Skipped += len(group.Sessions)
			continue
		}

		if n, err := sleep.Normalize(class.Main); err != nil {
			log.Warn("Skipping main sleep", zap.String("day", group.Day), zap.Error(err))
			result.Skipped++
		} else {
			mains = append(mains, domain.SleepRecord{UserID: integration.UserID, Date: n.Day, BedtimeStart: n.BedtimeStart, SleepMeasures: n.Measures})
		}

		for _, nap := range class.Naps {
			n, err := sleep.Normalize(nap)
			if err != nil {
				log.Warn("Skipping nap", zap.String("day", group.Day), zap.Error(err))
				result.Skipped++
				continue
			}
			naps = append(naps, domain.NapRecord{UserID: integration.UserID, Date: n.Day, BedtimeStart: n.BedtimeStart, SleepMeasures: n.Measures})
		}
	}

	if err := s.sleepRepo.ReplaceWindow(ctx, integration.UserID, window, mains, naps); err != nil {
		return nil, fmt.Errorf("store sleep records: %w", err)
	}

	result.Mains = len(mains)
	result.Naps = len(naps)
	span.SetAttributes(
		attribute.Int("sleep.mains", result.Mains),
		attribute.Int("sleep.naps", result.Naps),
		attribute.Int("sleep.skipped", result.Skipped),
	)
	return result, nil
}
