package repository

import (
	"context"
	"database/sql"

	"github.com/blaisecz/lifestats/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 200

// Migrate creates or updates every table the API and ETL use.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&domain.User{},
		&domain.Integration{},
		&domain.SleepRecord{},
		&domain.NapRecord{},
		&domain.WorkSession{},
		&domain.WorkSummary{},
		&domain.FinanceTransaction{},
		&domain.VitalsEntry{},
		&domain.JournalEntry{},
		&domain.Reflection{},
	)
}

// upsert inserts rows or updates every column on a natural-key conflict.
func upsert(tx *gorm.DB, rows any, keys ...string) error {
	columns := make([]clause.Column, len(keys))
	for i, k := range keys {
		columns[i] = clause.Column{Name: k}
	}
	return tx.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   columns,
		UpdateAll: true,
	}).CreateInBatches(rows, upsertBatchSize).Error
}

// latestDate returns the greatest YYYY-MM-DD value of column for a user, or "" when none.
func latestDate(ctx context.Context, db *gorm.DB, model any, column string, userID any) (string, error) {
	var latest sql.NullString
	row := db.WithContext(ctx).
		Model(model).
		Where("user_id = ?", userID).
		Select("MAX(" + column + ")").
		Row()
	if err := row.Scan(&latest); err != nil {
		return "", err
	}
	return latest.String, nil
}
