package repository

import (
	"context"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/blaisecz/lifestats/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SleepRepository interface {
	// ReplaceWindow upserts the fetched records and, when anything was fetched,
	// deletes the user's records inside the window that the fetch no longer reports.
	ReplaceWindow(ctx context.Context, userID uuid.UUID, window domain.SyncWindow, mains []domain.SleepRecord, naps []domain.NapRecord) error
	ListMain(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error)
	ListNaps(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.NapRecord, error)
	// OffsetsByDate returns the main-sleep UTC offset for each date in [from, to].
	OffsetsByDate(ctx context.Context, userID uuid.UUID, from, to string) (map[string]int, error)
	LatestDate(ctx context.Context, userID uuid.UUID) (string, error)
}

type sleepRepository struct {
	db *gorm.DB
}

func NewSleepRepository(db *gorm.DB) SleepRepository {
	return &sleepRepository{db: db}
}

func (r *sleepRepository) ReplaceWindow(ctx context.Context, userID uuid.UUID, window domain.SyncWindow, mains []domain.SleepRecord, naps []domain.NapRecord) error {
	if len(mains) == 0 && len(naps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(mains) > 0 {
			if err := upsert(tx, &mains, "user_id", "date"); err != nil {
				return err
			}
		}
		if len(naps) > 0 {
			if err := upsert(tx, &naps, "user_id", "date", "bedtime_start"); err != nil {
				return err
			}
		}
		if err := deleteStaleMains(tx, userID, window, mains); err != nil {
			return err
		}
		return deleteStaleNaps(tx, userID, window, naps)
	})
}

func deleteStaleMains(tx *gorm.DB, userID uuid.UUID, window domain.SyncWindow, mains []domain.SleepRecord) error {
	query := tx.Where("user_id = ? AND date BETWEEN ? AND ?", userID, window.StartDate(), window.EndDate())
	if len(mains) > 0 {
		dates := make([]string, len(mains))
		for i, m := range mains {
			dates[i] = m.Date
		}
		query = query.Where("date NOT IN ?", dates)
	}
	return query.Delete(&domain.SleepRecord{}).Error
}

func deleteStaleNaps(tx *gorm.DB, userID uuid.UUID, window domain.SyncWindow, naps []domain.NapRecord) error {
	keep := make(map[domain.NapKey]struct{}, len(naps))
	for _, n := range naps {
		keep[domain.NapKey{Date: n.Date, BedtimeStart: n.BedtimeStart.UTC()}] = struct{}{}
	}

	var existing []domain.NapRecord
	err := tx.Select("id", "date", "bedtime_start").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, window.StartDate(), window.EndDate()).
		Find(&existing).Error
	if err != nil {
		return err
	}

	var stale []uuid.UUID
	for _, n := range existing {
		if _, ok := keep[domain.NapKey{Date: n.Date, BedtimeStart: n.BedtimeStart.UTC()}]; !ok {
			stale = append(stale, n.ID)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	return tx.Where("id IN ?", stale).Delete(&domain.NapRecord{}).Error
}

func (r *sleepRepository) ListMain(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error) {
	var records []domain.SleepRecord
	if err := r.listQuery(ctx, userID, filter).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sleepRepository) ListNaps(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.NapRecord, error) {
	var records []domain.NapRecord
	if err := r.listQuery(ctx, userID, filter).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// listQuery orders newest first and fetches one extra row to detect a further page.
func (r *sleepRepository) listQuery(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("bedtime_start DESC, id DESC")

	if filter.From != "" {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("date <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			predicate, args := cursor.Predicate("bedtime_start")
			query = query.Where(predicate, args...)
		}
	}

	return query.Limit(pagination.NormalizeLimit(filter.Limit) + 1)
}

func (r *sleepRepository) OffsetsByDate(ctx context.Context, userID uuid.UUID, from, to string) (map[string]int, error) {
	var rows []struct {
		Date           string
		TimezoneOffset int
	}
	err := r.db.WithContext(ctx).
		Model(&domain.SleepRecord{}).
		Select("date", "timezone_offset").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	offsets := make(map[string]int, len(rows))
	for _, row := range rows {
		offsets[row.Date] = row.TimezoneOffset
	}
	return offsets, nil
}

func (r *sleepRepository) LatestDate(ctx context.Context, userID uuid.UUID) (string, error) {
	return latestDate(ctx, r.db, &domain.SleepRecord{}, "date", userID)
}
