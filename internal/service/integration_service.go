package service

import (
	"context"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/internal/repository"
	"github.com/google/uuid"
)

type IntegrationService interface {
	// Upsert stores the provider token for a user, replacing any existing one.
	Upsert(ctx context.Context, userID uuid.UUID, integrationType domain.IntegrationType, req *domain.UpsertIntegrationRequest) (*domain.Integration, error)
}

type integrationService struct {
	repo     repository.IntegrationRepository
	userRepo repository.UserRepository
}

func NewIntegrationService(repo repository.IntegrationRepository, userRepo repository.UserRepository) IntegrationService {
	return &integrationService{repo: repo, userRepo: userRepo}
}

func (s *integrationService) Upsert(ctx context.Context, userID uuid.UUID, integrationType domain.IntegrationType, req *domain.UpsertIntegrationRequest) (*domain.Integration, error) {
	if !integrationType.Valid() {
		return nil, domain.ErrUnsupportedIntegration
	}

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	status := req.Status
	if status == "" {
		status = domain.IntegrationActive
	}

	integration := &domain.Integration{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        integrationType,
		AccessToken: req.AccessToken,
		Status:      status,
	}
	if err := s.repo.Upsert(ctx, integration); err != nil {
		return nil, err
	}

	// The row keeps its original id on conflict; read it back.
	return s.repo.Get(ctx, userID, integrationType)
}
