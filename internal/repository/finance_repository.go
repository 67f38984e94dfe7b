package repository

import (
	"context"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FinanceRepository interface {
	// ReplaceTransactions upserts by hash and deletes the user's transactions in the
	// window whose hash is no longer present in the sheet.
	ReplaceTransactions(ctx context.Context, userID uuid.UUID, window domain.SyncWindow, txs []domain.FinanceTransaction) (int64, error)
	LatestDate(ctx context.Context, userID uuid.UUID) (string, error)
}

type financeRepository struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) ReplaceTransactions(ctx context.Context, userID uuid.UUID, window domain.SyncWindow, txs []domain.FinanceTransaction) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(txs) > 0 {
			if err := upsert(tx, &txs, "transaction_hash"); err != nil {
				return err
			}
		}

		query := tx.Where("user_id = ? AND transaction_date BETWEEN ? AND ?", userID, window.StartDate(), window.EndDate())
		if len(txs) > 0 {
			hashes := make([]string, len(txs))
			for i, t := range txs {
				hashes[i] = t.TransactionHash
			}
			query = query.Where("transaction_hash NOT IN ?", hashes)
		}
		res := query.Delete(&domain.FinanceTransaction{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

func (r *financeRepository) LatestDate(ctx context.Context, userID uuid.UUID) (string, error) {
	return latestDate(ctx, r.db, &domain.FinanceTransaction{}, "transaction_date", userID)
}
