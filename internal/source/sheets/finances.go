package sheets

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blaisecz/lifestats/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ParseFinances converts Transactions sheet rows dated inside the window into ledger rows.
// Rows whose date or amount cannot be parsed are logged and skipped. When the same hash
// appears twice the later row wins.
func ParseFinances(rows [][]string, window domain.SyncWindow, ownerID uuid.UUID, logger *zap.Logger) ([]domain.FinanceTransaction, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	h := newHeader(rows[0])
	if err := h.require("Date", "Description", "Amount"); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}

	var txs []domain.FinanceTransaction
	index := make(map[string]int)
	for n, row := range rows[1:] {
		if blankRow(row) || h.cell(row, "Amount") == "" {
			continue
		}

		date, err := parseDate(h.cell(row, "Date"))
		if err != nil {
			logger.Warn("Skipping finance row", zap.Int("row", n+2), zap.Error(err))
			continue
		}
		if !window.Contains(date.Format(domain.DateLayout)) {
			continue
		}

		tx, err := financeRow(h, row, date.Format(domain.DateLayout), ownerID)
		if err != nil {
			logger.Warn("Skipping finance row", zap.Int("row", n+2), zap.Error(err))
			continue
		}

		if i, ok := index[tx.TransactionHash]; ok {
			txs[i] = tx
			continue
		}
		index[tx.TransactionHash] = len(txs)
		txs = append(txs, tx)
	}
	return txs, nil
}

func financeRow(h header, row []string, date string, ownerID uuid.UUID) (domain.FinanceTransaction, error) {
	amount, err := parseAmount(h.cell(row, "Amount"))
	if err != nil {
		return domain.FinanceTransaction{}, err
	}
	description := h.cell(row, "Description")

	return domain.FinanceTransaction{
		TransactionHash: TransactionHash(date, description, amount),
		UserID:          ownerID,
		TransactionDate: date,
		Description:     description,
		Amount:          amount,
		Category:        optional(h.cell(row, "Category")),
		TransactionType: optional(strings.ToLower(h.cell(row, "Transaction Type"))),
		GiftType:        optional(strings.ToLower(h.cell(row, "Gift Type"))),
		Person:          optional(h.cell(row, "Person")),
		Notes:           optional(h.cell(row, "Notes")),
		AccountName:     optional(h.cell(row, "Account Name")),
		IsDate:          parseBool(h.cell(row, "date")),
		IsVacation:      parseBool(h.cell(row, "vacation")),
		IsBirthday:      parseBool(h.cell(row, "birthday")),
		IsChristmas:     parseBool(h.cell(row, "christmas")),
	}, nil
}

// TransactionHash is the hex md5 of date, description and amount concatenated.
// Whole amounts render with a trailing ".0" so hashes match rows written by earlier loaders.
func TransactionHash(date, description string, amount decimal.Decimal) string {
	a := amount.String()
	if !strings.Contains(a, ".") {
		a += ".0"
	}
	sum := md5.Sum([]byte(date + description + a))
	return hex.EncodeToString(sum[:])
}

func parseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(value)
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + strings.Trim(cleaned, "()")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q", domain.ErrInvalidRecord, value)
	}
	return amount, nil
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "t", "y":
		return true
	}
	return false
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
