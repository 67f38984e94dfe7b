package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/repository"
	"github.com/blaisecz/lifestats/internal/timebucket"
	"github.com/google/uuid"
	"github.com/maypok86/otter/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultWorkHoursDays is the dashboard range when no dates are given.
	DefaultWorkHoursDays = 7

	// Local dates reach at most 14h before and 12h after the same UTC date.
	maxEastOffset = 14 * time.Hour
	maxWestOffset = 12 * time.Hour
)

// WorkHoursCacheOptions sizes the dashboard cache. A zero TTL disables caching.
type WorkHoursCacheOptions struct {
	TTL     time.Duration
	MaxSize int
}

type WorkHoursService interface {
	// Get buckets tracked sessions by local hour for each date in [startDate, endDate].
	// Empty dates default to the last seven days ending today.
	Get(ctx context.Context, userID uuid.UUID, startDate, endDate string) (*domain.WorkHoursResponse, error)
}

type workHoursService struct {
	userRepo       repository.UserRepository
	sleepRepo      repository.SleepRepository
	workRepo       repository.WorkRepository
	fallbackOffset int
	cache          *otter.Cache[string, *domain.WorkHoursResponse]
	logger         *zap.Logger
	now            func() time.Time
}

func NewWorkHoursService(
	userRepo repository.UserRepository,
	sleepRepo repository.SleepRepository,
	workRepo repository.WorkRepository,
	fallbackOffsetMinutes int,
	cacheOpts WorkHoursCacheOptions,
	logger *zap.Logger,
) WorkHoursService {
	s := &workHoursService{
		userRepo:       userRepo,
		sleepRepo:      sleepRepo,
		workRepo:       workRepo,
		fallbackOffset: fallbackOffsetMinutes,
		logger:         logger.Named("work-hours"),
		now:            time.Now,
	}
	if cacheOpts.TTL > 0 && cacheOpts.MaxSize > 0 {
		s.cache = otter.Must(&otter.Options[string, *domain.WorkHoursResponse]{
			MaximumSize:      cacheOpts.MaxSize,
			ExpiryCalculator: otter.ExpiryWriting[string, *domain.WorkHoursResponse](cacheOpts.TTL),
		})
	}
	return s
}

func (s *workHoursService) Get(ctx context.Context, userID uuid.UUID, startDate, endDate string) (*domain.WorkHoursResponse, error) {
	start, end, err := s.dateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	tracer := otel.Tracer("lifestats/work-hours")
	ctx, span := tracer.Start(ctx, "WorkHoursService.Get",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("range.start", start.Format(domain.DateLayout)),
			attribute.String("range.end", end.Format(domain.DateLayout)),
		),
	)
	defer span.End()

	key := fmt.Sprintf("%s|%s|%s", userID, start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	if s.cache != nil {
		if cached, ok := s.cache.GetIfPresent(key); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	fallback := s.fallbackOffset
	if user.HomeOffsetMinutes != nil {
		fallback = *user.HomeOffsetMinutes
	}

	offsets, err := s.sleepRepo.OffsetsByDate(ctx, userID, start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("load offsets: %w", err)
	}

	sessions, err := s.workRepo.ListOverlapping(ctx, userID,
		start.Add(-maxEastOffset), end.AddDate(0, 0, 1).Add(maxWestOffset))
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	intervals := make([]timebucket.Interval, 0, len(sessions))
	for _, ws := range sessions {
		intervals = append(intervals, timebucket.Interval{Start: ws.StartTime, End: ws.EndTime})
	}

	matrix, err := timebucket.NewAggregator(fallback).Aggregate(start, end, timebucket.Offsets(offsets), intervals)
	if err != nil {
		return nil, err
	}
	if len(matrix.FallbackDates) > 0 {
		s.logger.Debug("Using fallback offset",
			zap.String("user_id", userID.String()),
			zap.Int("offset_minutes", fallback),
			zap.Strings("dates", matrix.FallbackDates),
		)
	}

	resp := toWorkHoursResponse(start, end, matrix)
	if s.cache != nil {
		s.cache.Set(key, resp)
	}
	span.SetAttributes(attribute.Int("sessions.count", len(sessions)))
	return resp, nil
}

func (s *workHoursService) dateRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" && endDate == "" {
		today := s.now().UTC()
		end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		return end.AddDate(0, 0, -(DefaultWorkHoursDays - 1)), end, nil
	}
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date and end_date must be given together", domain.ErrInvalidInput)
	}

	start, err := time.Parse(domain.DateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, startDate)
	}
	end, err := time.Parse(domain.DateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	return start, end, nil
}

func toWorkHoursResponse(start, end time.Time, m *timebucket.Matrix) *domain.WorkHoursResponse {
	resp := &domain.WorkHoursResponse{
		StartDate:     start.Format(domain.DateLayout),
		EndDate:       end.Format(domain.DateLayout),
		Days:          make([]domain.DayHours, len(m.Days)),
		HourOfDay:     m.HourOfDayHours(),
		DayOfWeek:     m.DayOfWeekHours(),
		TotalHours:    m.TotalMinutes() / 60,
		FallbackDates: m.FallbackDates,
	}
	for i, d := range m.Days {
		resp.Days[i] = domain.DayHours{Date: d.Date, Minutes: d.Minutes}
	}
	return resp
}
