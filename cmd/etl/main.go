// Command etl syncs Oura sleep, Rize work sessions and the finance and vitals
// workbooks into the lifestats database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/lifestats/internal/config"
	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/etl"
	"github.com/blaisecz/lifestats/internal/logger"
	"github.com/blaisecz/lifestats/internal/repository"
	"github.com/blaisecz/lifestats/internal/service"
	"github.com/blaisecz/lifestats/internal/source/oura"
	"github.com/blaisecz/lifestats/internal/source/rize"
	"github.com/blaisecz/lifestats/internal/source/sheets"
	"github.com/blaisecz/lifestats/internal/telemetry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	start   string
	end     string
	sources []string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "lifestats-etl",
		Short:         "Sync sleep, work, finance and vitals data into the lifestats database",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := parseWindow(opts.start, opts.end)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			return run(cmd.Context(), window, opts.sources)
		},
	}

	cmd.Flags().StringVar(&opts.start, "start", "", "first date to sync (YYYY-MM-DD); defaults to the day after the latest stored record")
	cmd.Flags().StringVar(&opts.end, "end", "", "last date to sync (YYYY-MM-DD); required with --start")
	cmd.Flags().StringSliceVar(&opts.sources, "source", nil, "sources to run: sleep, work, finances, vitals (default all)")
	return cmd
}

// parseWindow returns nil when neither bound is given so each source syncs incrementally.
func parseWindow(start, end string) (*domain.SyncWindow, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, fmt.Errorf("%w: --start and --end must be given together", domain.ErrInvalidInput)
	}
	s, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: --start %q", domain.ErrInvalidInput, start)
	}
	e, err := time.Parse(domain.DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: --end %q", domain.ErrInvalidInput, end)
	}
	if e.Before(s) {
		return nil, domain.ErrInvalidDateRange
	}
	return &domain.SyncWindow{Start: s, End: e}, nil
}

func run(ctx context.Context, window *domain.SyncWindow, sources []string) error {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "etl")
	if err != nil {
		log.Error("Failed to initialize tracing", zap.Error(err))
		return err
	}
	defer shutdownTracer(context.Background())

	db, err := config.NewDatabase(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	if err := repository.Migrate(ctx, db); err != nil {
		log.Error("Failed to migrate database", zap.Error(err))
		return err
	}

	var ownerID uuid.UUID
	if cfg.SheetsOwnerID != "" {
		if ownerID, err = uuid.Parse(cfg.SheetsOwnerID); err != nil {
			log.Error("SHEETS_OWNER_ID is not a UUID", zap.String("value", cfg.SheetsOwnerID))
			return err
		}
	}

	integrationRepo := repository.NewIntegrationRepository(db)

	sleepSync := service.NewSleepSyncService(
		oura.NewClient(cfg.OuraBaseURL, cfg.ProviderTimeout, log),
		repository.NewSleepRepository(db), integrationRepo, log,
	)
	workSync := service.NewWorkSyncService(
		rize.NewClient(cfg.RizeBaseURL, cfg.ProviderTimeout, log),
		repository.NewWorkRepository(db), integrationRepo, log,
	)
	financeSync := service.NewFinanceSyncService(
		service.SheetSource{Workbook: cfg.FinancesWorkbook, Sheet: cfg.FinancesSheet, OwnerID: ownerID},
		sheets.ReadRows, repository.NewFinanceRepository(db), log,
	)
	vitalsSync := service.NewVitalsSyncService(
		service.SheetSource{Workbook: cfg.VitalsWorkbook, Sheet: cfg.VitalsSheet, OwnerID: ownerID},
		sheets.ReadRows, repository.NewVitalsRepository(db), log,
	)

	runner := etl.NewRunner([]etl.Job{
		{Name: "sleep", Run: sleepSync.Sync},
		{Name: "work", Run: workSync.Sync},
		{Name: "finances", Run: financeSync.Sync},
		{Name: "vitals", Run: vitalsSync.Sync},
	}, etl.NewColorReporter(os.Stdout), log)

	if err := runner.Select(sources); err != nil {
		log.Error("Invalid --source", zap.Error(err))
		return err
	}

	if !runner.Run(ctx, window) {
		return fmt.Errorf("one or more sources failed")
	}
	return nil
}
