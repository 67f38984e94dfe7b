package repository

import (
	"context"
	"errors"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JournalRepository interface {
	GetEntry(ctx context.Context, userID uuid.UUID, date string) (*domain.JournalEntry, error)
	// UpsertEntry writes the entry for its (user, date), replacing every column of an existing one.
	UpsertEntry(ctx context.Context, entry *domain.JournalEntry) error
	GetReflection(ctx context.Context, userID uuid.UUID, date string) (*domain.Reflection, error)
	UpsertReflection(ctx context.Context, reflection *domain.Reflection) error
	// AdjacentReflection returns the closest reflection strictly before or after date.
	AdjacentReflection(ctx context.Context, userID uuid.UUID, date string, direction domain.JournalDirection) (*domain.Reflection, error)
}

type journalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) GetEntry(ctx context.Context, userID uuid.UUID, date string) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *journalRepository) UpsertEntry(ctx context.Context, entry *domain.JournalEntry) error {
	return upsert(r.db.WithContext(ctx), entry, "user_id", "date")
}

func (r *journalRepository) GetReflection(ctx context.Context, userID uuid.UUID, date string) (*domain.Reflection, error) {
	var reflection domain.Reflection
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Take(&reflection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &reflection, nil
}

func (r *journalRepository) UpsertReflection(ctx context.Context, reflection *domain.Reflection) error {
	return upsert(r.db.WithContext(ctx), reflection, "user_id", "date")
}

func (r *journalRepository) AdjacentReflection(ctx context.Context, userID uuid.UUID, date string, direction domain.JournalDirection) (*domain.Reflection, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	switch direction {
	case domain.DirectionPrev:
		query = query.Where("date < ?", date).Order("date DESC")
	case domain.DirectionNext:
		query = query.Where("date > ?", date).Order("date")
	default:
		return nil, domain.ErrInvalidInput
	}

	var reflection domain.Reflection
	if err := query.Take(&reflection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &reflection, nil
}
