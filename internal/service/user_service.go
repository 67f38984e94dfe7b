package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/repository"
	"github.com/google/uuid"
)

type UserService interface {
	// Create registers a user. The timezone is stored in its canonical IANA spelling.
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	loc, err := time.LoadLocation(req.Timezone)
	if err != nil || req.Timezone == "" || req.Timezone == "Local" {
		return nil, fmt.Errorf("%w: timezone %q", domain.ErrInvalidInput, req.Timezone)
	}

	user := &domain.User{
		ID:                uuid.New(),
		Timezone:          loc.String(),
		HomeOffsetMinutes: req.HomeOffsetMinutes,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}
