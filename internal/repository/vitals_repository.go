package repository

import (
	"context"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VitalsRepository interface {
	Upsert(ctx context.Context, entries []domain.VitalsEntry) error
	LatestDate(ctx context.Context, userID uuid.UUID) (string, error)
}

type vitalsRepository struct {
	db *gorm.DB
}

func NewVitalsRepository(db *gorm.DB) VitalsRepository {
	return &vitalsRepository{db: db}
}

func (r *vitalsRepository) Upsert(ctx context.Context, entries []domain.VitalsEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return upsert(r.db.WithContext(ctx), &entries, "user_id", "date")
}

func (r *vitalsRepository) LatestDate(ctx context.Context, userID uuid.UUID) (string, error) {
	return latestDate(ctx, r.db, &domain.VitalsEntry{}, "date", userID)
}
