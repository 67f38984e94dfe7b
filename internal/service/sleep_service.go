package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/repository"
	"github.com/blaisecz/lifestats/pkg/pagination"
	"github.com/google/uuid"
)

type SleepService interface {
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error)
}

type sleepService struct {
	repo     repository.SleepRepository
	userRepo repository.UserRepository
}

func NewSleepService(repo repository.SleepRepository, userRepo repository.UserRepository) SleepService {
	return &sleepService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *sleepService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(domain.DateLayout, d); err != nil {
			return nil, fmt.Errorf("%w: date %q", domain.ErrInvalidInput, d)
		}
	}

	type page struct {
		resp []domain.SleepRecordResponse
		at   []time.Time
	}
	var p page

	switch filter.Kind {
	case domain.SleepKindNap:
		naps, err := s.repo.ListNaps(ctx, userID, filter)
		if err != nil {
			return nil, err
		}
		for i := range naps {
			p.resp = append(p.resp, naps[i].ToResponse())
			p.at = append(p.at, naps[i].BedtimeStart)
		}
	case domain.SleepKindMain, "":
		mains, err := s.repo.ListMain(ctx, userID, filter)
		if err != nil {
			return nil, err
		}
		for i := range mains {
			p.resp = append(p.resp, mains[i].ToResponse())
			p.at = append(p.at, mains[i].BedtimeStart)
		}
	default:
		return nil, fmt.Errorf("%w: kind %q", domain.ErrInvalidInput, filter.Kind)
	}

	var hasMore bool
	p.resp, hasMore = pagination.Page(p.resp, filter.Limit)

	response := &domain.SleepRecordListResponse{
		Data:       p.resp,
		Pagination: domain.PaginationResponse{HasMore: hasMore},
	}
	if response.Data == nil {
		response.Data = []domain.SleepRecordResponse{}
	}

	if hasMore && len(p.resp) > 0 {
		last := len(p.resp) - 1
		cursor := &pagination.Cursor{ID: p.resp[last].ID, At: p.at[last]}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}
