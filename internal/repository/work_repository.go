package repository

import (
	"context"
	"time"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkRepository interface {
	// ReplaceSessions upserts sessions and removes the user's sessions dated inside
	// the window whose IDs are not in fetchedIDs. It returns the number removed.
	ReplaceSessions(ctx context.Context, userID uuid.UUID, window domain.SyncWindow, sessions []domain.WorkSession, fetchedIDs []string) (int64, error)
	UpsertSummaries(ctx context.Context, summaries []domain.WorkSummary) error
	// ListOverlapping returns sessions intersecting [from, to).
	ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.WorkSession, error)
	LatestDate(ctx context.Context, userID uuid.UUID) (string, error)
}

type workRepository struct {
	db *gorm.DB
}

func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &workRepository{db: db}
}

func (r *workRepository) ReplaceSessions(ctx context.Context, userID uuid.UUID, window domain.SyncWindow, sessions []domain.WorkSession, fetchedIDs []string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fetchedIDs) > 0 {
			res := tx.Where("user_id = ? AND date BETWEEN ? AND ?", userID, window.StartDate(), window.EndDate()).
				Where("session_id NOT IN ?", fetchedIDs).
				Delete(&domain.WorkSession{})
			if res.Error != nil {
				return res.Error
			}
			deleted = res.RowsAffected
		}
		if len(sessions) == 0 {
			return nil
		}
		return upsert(tx, &sessions, "session_id")
	})
	return deleted, err
}

func (r *workRepository) UpsertSummaries(ctx context.Context, summaries []domain.WorkSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	return upsert(r.db.WithContext(ctx), &summaries, "user_id", "date")
}

func (r *workRepository) ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.WorkSession, error) {
	var sessions []domain.WorkSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_time < ? AND end_time > ? AND end_time > start_time", userID, to, from).
		Order("start_time").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *workRepository) LatestDate(ctx context.Context, userID uuid.UUID) (string, error) {
	return latestDate(ctx, r.db, &domain.WorkSession{}, "date", userID)
}
