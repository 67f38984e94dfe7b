// Package etl runs the source sync jobs in order and reports their outcome.
package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Job syncs one source. A nil window means each source picks its own incremental range.
type Job struct {
	Name string
	Run  func(ctx context.Context, window *domain.SyncWindow) error
}

// Reporter is told when each job starts and ends.
type Reporter interface {
	JobStarted(name string)
	JobFinished(name string, elapsed time.Duration, err error)
}

type Runner struct {
	jobs     []Job
	reporter Reporter
	logger   *zap.Logger
}

func NewRunner(jobs []Job, reporter Reporter, logger *zap.Logger) *Runner {
	return &Runner{jobs: jobs, reporter: reporter, logger: logger.Named("etl")}
}

// Select narrows the runner to the named jobs, keeping configured order.
func (r *Runner) Select(names []string) error {
	if len(names) == 0 {
		return nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var selected []Job
	for _, j := range r.jobs {
		if want[j.Name] {
			selected = append(selected, j)
			delete(want, j.Name)
		}
	}
	for n := range want {
		return fmt.Errorf("unknown source %q", n)
	}
	r.jobs = selected
	return nil
}

// Run executes every job even when earlier ones fail and reports whether all succeeded.
func (r *Runner) Run(ctx context.Context, window *domain.SyncWindow) bool {
	tracer := otel.Tracer("lifestats/etl")
	ctx, span := tracer.Start(ctx, "Runner.Run")
	defer span.End()

	success := true
	for _, job := range r.jobs {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Batch cancelled", zap.String("next_job", job.Name), zap.Error(err))
			success = false
			break
		}

		r.reporter.JobStarted(job.Name)
		started := time.Now()
		err := r.runJob(ctx, job, window)
		elapsed := time.Since(started)
		r.reporter.JobFinished(job.Name, elapsed, err)

		if err != nil {
			success = false
			r.logger.Error("Job failed", zap.String("job", job.Name), zap.Duration("elapsed", elapsed), zap.Error(err))
			continue
		}
		r.logger.Info("Job completed", zap.String("job", job.Name), zap.Duration("elapsed", elapsed))
	}

	span.SetAttributes(attribute.Bool("etl.success", success))
	if !success {
		span.SetStatus(codes.Error, "one or more jobs failed")
	}
	return success
}

// runJob turns a panicking job into a failure so later jobs still run.
func (r *Runner) runJob(ctx context.Context, job Job, window *domain.SyncWindow) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("job %s panicked: %v", job.Name, p)
		}
	}()

	ctx, span := otel.Tracer("lifestats/etl").Start(ctx, "Job."+job.Name)
	defer span.End()

	if err := job.Run(ctx, window); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
