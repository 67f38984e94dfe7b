package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/repository"
	"github.com/blaisecz/lifestats/internal/source/sheets"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RowReader loads a worksheet as text rows, header first.
type RowReader func(path, sheet string) ([][]string, error)

// SheetSource locates a worksheet and the user its rows belong to.
type SheetSource struct {
	Workbook string
	Sheet    string
	OwnerID  uuid.UUID
}

func (s SheetSource) configured() bool {
	return s.Workbook != "" && s.OwnerID != uuid.Nil
}

type FinanceSyncService interface {
	Sync(ctx context.Context, window *domain.SyncWindow) error
}

type financeSyncService struct {
	source  SheetSource
	read    RowReader
	repo    repository.FinanceRepository
	windows windowResolver
	logger  *zap.Logger
}

func NewFinanceSyncService(source SheetSource, read RowReader, repo repository.FinanceRepository, logger *zap.Logger) FinanceSyncService {
	return &financeSyncService{
		source: source,
		read:   read,
		repo:   repo,
		windows: windowResolver{
			defaultStart: FinancesDefaultStart,
			latest:       repo.LatestDate,
			now:          time.Now,
		},
		logger: logger.Named("finance-sync"),
	}
}

func (s *financeSyncService) Sync(ctx context.Context, explicit *domain.SyncWindow) error {
	if !s.source.configured() {
		s.logger.Info("Finance workbook not configured, skipping")
		return nil
	}

	window, err := s.windows.resolve(ctx, s.source.OwnerID, explicit)
	if err != nil {
		return err
	}

	tracer := otel.Tracer("lifestats/finance-sync")
	ctx, span := tracer.Start(ctx, "FinanceSyncService.Sync",
		trace.WithAttributes(
			attribute.String("window.start", window.StartDate()),
			attribute.String("window.end", window.EndDate()),
		),
	)
	defer span.End()

	rows, err := s.read(s.source.Workbook, s.source.Sheet)
	if err != nil {
		return fmt.Errorf("read finance sheet: %w", err)
	}
	if len(rows) == 0 {
		s.logger.Warn("No finance data in workbook")
		return nil
	}

	txs, err := sheets.ParseFinances(rows, window, s.source.OwnerID, s.logger)
	if err != nil {
		return err
	}

	deleted, err := s.repo.ReplaceTransactions(ctx, s.source.OwnerID, window, txs)
	if err != nil {
		return fmt.Errorf("store transactions: %w", err)
	}

	span.SetAttributes(attribute.Int("finance.upserted", len(txs)), attribute.Int64("finance.deleted", deleted))
	s.logger.Info("Finance data synced",
		zap.String("start_date", window.StartDate()),
		zap.String("end_date", window.EndDate()),
		zap.Int("upserted", len(txs)),
		zap.Int64("deleted", deleted),
	)
	return nil
}

type VitalsSyncService interface {
	Sync(ctx context.Context, window *domain.SyncWindow) error
}

type vitalsSyncService struct {
	source  SheetSource
	read    RowReader
	repo    repository.VitalsRepository
	windows windowResolver
	logger  *zap.Logger
}

func NewVitalsSyncService(source SheetSource, read RowReader, repo repository.VitalsRepository, logger *zap.Logger) VitalsSyncService {
	return &vitalsSyncService{
		source: source,
		read:   read,
		repo:   repo,
		windows: windowResolver{
			defaultStart: VitalsDefaultStart,
			latest:       repo.LatestDate,
			now:          time.Now,
		},
		logger: logger.Named("vitals-sync"),
	}
}

func (s *vitalsSyncService) Sync(ctx context.Context, explicit *domain.SyncWindow) error {
	if !s.source.configured() {
		s.logger.Info("Vitals workbook not configured, skipping")
		return nil
	}

	window, err := s.windows.resolve(ctx, s.source.OwnerID, explicit)
	if err != nil {
		return err
	}

	tracer := otel.Tracer("lifestats/vitals-sync")
	ctx, span := tracer.Start(ctx, "VitalsSyncService.Sync",
		trace.WithAttributes(
			attribute.String("window.start", window.StartDate()),
			attribute.String("window.end", window.EndDate()),
		),
	)
	defer span.End()

	rows, err := s.read(s.source.Workbook, s.source.Sheet)
	if err != nil {
		return fmt.Errorf("read vitals sheet: %w", err)
	}

	entries, err := sheets.ParseVitals(rows, window, s.source.OwnerID, s.logger)
	if err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, entries); err != nil {
		return fmt.Errorf("store vitals: %w", err)
	}

	s.logger.Info("Vitals data synced",
		zap.String("start_date", window.StartDate()),
		zap.String("end_date", window.EndDate()),
		zap.Int("upserted", len(entries)),
	)
	return nil
}
