package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/repository"
	"github.com/google/uuid"
)

type JournalService interface {
	GetEntry(ctx context.Context, userID uuid.UUID, date string) (*domain.JournalEntry, error)
	// PutEntry creates or replaces the user's entry for date.
	PutEntry(ctx context.Context, userID uuid.UUID, date string, req *domain.PutJournalEntryRequest) (*domain.JournalEntry, error)
	GetReflection(ctx context.Context, userID uuid.UUID, date string) (*domain.Reflection, error)
	PutReflection(ctx context.Context, userID uuid.UUID, date string, req *domain.PutReflectionRequest) (*domain.Reflection, error)
	// NavigateReflection returns the nearest reflection before or after date.
	NavigateReflection(ctx context.Context, userID uuid.UUID, date string, direction domain.JournalDirection) (*domain.Reflection, error)
}

type journalService struct {
	repo     repository.JournalRepository
	userRepo repository.UserRepository
}

func NewJournalService(repo repository.JournalRepository, userRepo repository.UserRepository) JournalService {
	return &journalService{repo: repo, userRepo: userRepo}
}

func (s *journalService) GetEntry(ctx context.Context, userID uuid.UUID, date string) (*domain.JournalEntry, error) {
	if err := s.check(ctx, userID, date); err != nil {
		return nil, err
	}
	return s.repo.GetEntry(ctx, userID, date)
}

func (s *journalService) PutEntry(ctx context.Context, userID uuid.UUID, date string, req *domain.PutJournalEntryRequest) (*domain.JournalEntry, error) {
	if err := s.check(ctx, userID, date); err != nil {
		return nil, err
	}

	entry := &domain.JournalEntry{
		UserID:            userID,
		Date:              date,
		Content:           req.Content,
		Summary:           req.Summary,
		DayScore:          req.DayScore,
		ProductivityScore: req.ProductivityScore,
		Activities:        orEmpty(req.Activities),
		Social:            orEmpty(req.Social),
		Education:         orEmpty(req.Education),
		Mood:              orEmpty(req.Mood),
		CustomTags:        orEmpty(req.CustomTags),
	}
	if err := s.repo.UpsertEntry(ctx, entry); err != nil {
		return nil, err
	}
	return s.repo.GetEntry(ctx, userID, date)
}

func (s *journalService) GetReflection(ctx context.Context, userID uuid.UUID, date string) (*domain.Reflection, error) {
	if err := s.check(ctx, userID, date); err != nil {
		return nil, err
	}
	return s.repo.GetReflection(ctx, userID, date)
}

func (s *journalService) PutReflection(ctx context.Context, userID uuid.UUID, date string, req *domain.PutReflectionRequest) (*domain.Reflection, error) {
	if err := s.check(ctx, userID, date); err != nil {
		return nil, err
	}

	reflection := &domain.Reflection{
		UserID:  userID,
		Date:    date,
		Content: req.Content,
		Themes:  orEmpty(req.Themes),
	}
	if err := s.repo.UpsertReflection(ctx, reflection); err != nil {
		return nil, err
	}
	return s.repo.GetReflection(ctx, userID, date)
}

func (s *journalService) NavigateReflection(ctx context.Context, userID uuid.UUID, date string, direction domain.JournalDirection) (*domain.Reflection, error) {
	if direction != domain.DirectionPrev && direction != domain.DirectionNext {
		return nil, fmt.Errorf("%w: direction %q", domain.ErrInvalidInput, direction)
	}
	if err := s.check(ctx, userID, date); err != nil {
		return nil, err
	}
	return s.repo.AdjacentReflection(ctx, userID, date, direction)
}

// check validates the date and that the user exists.
func (s *journalService) check(ctx context.Context, userID uuid.UUID, date string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q", domain.ErrInvalidInput, date)
	}
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

// orEmpty stores an absent tag list as [] rather than null.
func orEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
