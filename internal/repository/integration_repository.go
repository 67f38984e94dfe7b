package repository

import (
	"context"
	"errors"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntegrationRepository interface {
	ListActive(ctx context.Context, integrationType domain.IntegrationType) ([]domain.Integration, error)
	Get(ctx context.Context, userID uuid.UUID, integrationType domain.IntegrationType) (*domain.Integration, error)
	Upsert(ctx context.Context, integration *domain.Integration) error
	UpdateSyncStatus(ctx context.Context, id uuid.UUID, status string, at time.Time) error
}

type integrationRepository struct {
	db *gorm.DB
}

func NewIntegrationRepository(db *gorm.DB) IntegrationRepository {
	return &integrationRepository{db: db}
}

func (r *integrationRepository) ListActive(ctx context.Context, integrationType domain.IntegrationType) ([]domain.Integration, error) {
	var integrations []domain.Integration
	err := r.db.WithContext(ctx).
		Where("type = ? AND status = ?", integrationType, domain.IntegrationActive).
		Order("created_at").
		Find(&integrations).Error
	if err != nil {
		return nil, err
	}
	return integrations, nil
}

func (r *integrationRepository) Get(ctx context.Context, userID uuid.UUID, integrationType domain.IntegrationType) (*domain.Integration, error) {
	var integration domain.Integration
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, integrationType).
		First(&integration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &integration, nil
}

func (r *integrationRepository) Upsert(ctx context.Context, integration *domain.Integration) error {
	return upsert(r.db.WithContext(ctx), integration, "user_id", "type")
}

func (r *integrationRepository) UpdateSyncStatus(ctx context.Context, id uuid.UUID, status string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Integration{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_sync_status": status,
			"last_sync_at":     at,
		}).Error
}
