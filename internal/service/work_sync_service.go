package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/repository"
	"github.com/blaisecz/lifestats/internal/source/rize"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// WorkFetcher reads time-tracking sessions and daily summaries.
type WorkFetcher interface {
	FetchSessions(ctx context.Context, token string, start, end time.Time) ([]rize.Session, error)
	FetchSummaries(ctx context.Context, token string, start, end time.Time) ([]rize.Bucket, error)
}

type WorkSyncResult struct {
	Sessions  int
	Deleted   int64
	Summaries int
	Skipped   int
}

type WorkSyncService interface {
	// Sync runs every active Rize integration. A nil window syncs incrementally per user.
	Sync(ctx context.Context, window *domain.SyncWindow) error
	SyncIntegration(ctx context.Context, integration domain.Integration, window domain.SyncWindow) (*WorkSyncResult, error)
}

type workSyncService struct {
	fetcher      WorkFetcher
	workRepo     repository.WorkRepository
	integrations repository.IntegrationRepository
	windows      windowResolver
	logger       *zap.Logger
	now          func() time.Time
}

func NewWorkSyncService(fetcher WorkFetcher, workRepo repository.WorkRepository, integrations repository.IntegrationRepository, logger *zap.Logger) WorkSyncService {
	return &workSyncService{
		fetcher:      fetcher,
		workRepo:     workRepo,
		integrations: integrations,
		windows: windowResolver{
			defaultStart: WorkDefaultStart,
			latest:       workRepo.LatestDate,
			now:          time.Now,
		},
		logger: logger.Named("work-sync"),
		now:    time.Now,
	}
}

func (s *workSyncService) Sync(ctx context.Context, window *domain.SyncWindow) error {
	tracer := otel.Tracer("lifestats/work-sync")
	ctx, span := tracer.Start(ctx, "WorkSyncService.Sync")
	defer span.End()

	integrations, err := s.integrations.ListActive(ctx, domain.IntegrationRize)
	if err != nil {
		return fmt.Errorf("list rize integrations: %w", err)
	}

	var errs []error
	for _, integration := range integrations {
		log := s.logger.With(zap.String("user_id", integration.UserID.String()))

		status := domain.SyncStatusSuccess
		w, err := s.windows.resolve(ctx, integration.UserID, window)
		var result *WorkSyncResult
		if err == nil {
			result, err = s.SyncIntegration(ctx, integration, w)
		}
		if err != nil {
			status = domain.SyncStatusFailed
			log.Error("Work sync failed", zap.Error(err))
			errs = append(errs, fmt.Errorf("user %s: %w", integration.UserID, err))
		} else {
			log.Info("Work sync completed",
				zap.Int("sessions", result.Sessions),
				zap.Int64("deleted", result.Deleted),
				zap.Int("summaries", result.Summaries),
			)
		}

		if err := s.integrations.UpdateSyncStatus(ctx, integration.ID, status, s.now().UTC()); err != nil {
			log.Warn("Failed to record sync status", zap.Error(err))
		}
	}
	return errors.Join(errs...)
}

func (s *workSyncService) SyncIntegration(ctx context.Context, integration domain.Integration, window domain.SyncWindow) (*WorkSyncResult, error) {
	tracer := otel.Tracer("lifestats/work-sync")
	ctx, span := tracer.Start(ctx, "WorkSyncService.SyncIntegration",
		trace.WithAttributes(
			attribute.String("user.id", integration.UserID.String()),
			attribute.String("window.start", window.StartDate()),
			attribute.String("window.end", window.EndDate()),
		),
	)
	defer span.End()

	result := &WorkSyncResult{}
	if err := s.syncSessions(ctx, integration, window, result); err != nil {
		return nil, err
	}
	if err := s.syncSummaries(ctx, integration, window, result); err != nil {
		return nil, err
	}
	return result, nil
}

// syncSessions fetches a day either side of the window so sessions crossing UTC midnight are seen.
func (s *workSyncService) syncSessions(ctx context.Context, integration domain.Integration, window domain.SyncWindow, result *WorkSyncResult) error {
	raw, err := s.fetcher.FetchSessions(ctx, integration.AccessToken,
		window.Start.AddDate(0, 0, -1), window.End.AddDate(0, 0, 2))
	if err != nil {
		return fmt.Errorf("fetch sessions: %w", err)
	}

	fetchedIDs := make([]string, 0, len(raw))
	var sessions []domain.WorkSession
	for _, r := range raw {
		if err := recordValidator.Struct(r); err != nil {
			s.logger.Warn("Skipping invalid work session", zap.String("session_id", r.ID), zap.Error(err))
			result.Skipped++
			continue
		}
		fetchedIDs = append(fetchedIDs, r.ID)

		ws := r.ToWorkSession(integration.UserID)
		if window.Contains(ws.Date) {
			sessions = append(sessions, ws)
		}
	}

	deleted, err := s.workRepo.ReplaceSessions(ctx, integration.UserID, window, sessions, fetchedIDs)
	if err != nil {
		return fmt.Errorf("store sessions: %w", err)
	}
	if deleted > 0 {
		s.logger.Info("Deleted sessions no longer reported",
			zap.String("user_id", integration.UserID.String()),
			zap.Int64("count", deleted),
		)
	}
	result.Sessions = len(sessions)
	result.Deleted = deleted
	return nil
}

// syncSummaries starts a day early because the provider keeps updating the current day.
func (s *workSyncService) syncSummaries(ctx context.Context, integration domain.Integration, window domain.SyncWindow, result *WorkSyncResult) error {
	buckets, err := s.fetcher.FetchSummaries(ctx, integration.AccessToken, window.Start.AddDate(0, 0, -1), window.End)
	if err != nil {
		return fmt.Errorf("fetch summaries: %w", err)
	}

	summaries := make([]domain.WorkSummary, 0, len(buckets))
	for _, b := range buckets {
		summary, err := b.ToWorkSummary(integration.UserID)
		if err != nil {
			s.logger.Warn("Skipping summary bucket", zap.String("date", b.Date), zap.Error(err))
			result.Skipped++
			continue
		}
		summaries = append(summaries, summary)
	}

	if err := s.workRepo.UpsertSummaries(ctx, summaries); err != nil {
		return fmt.Errorf("store summaries: %w", err)
	}
	result.Summaries = len(summaries)
	return nil
}
