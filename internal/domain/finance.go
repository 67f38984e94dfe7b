package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinanceTransaction is a spreadsheet ledger row. TransactionHash is md5(date+description+amount).
type FinanceTransaction struct {
	TransactionHash string          `gorm:"type:varchar(32);primaryKey" json:"transaction_hash"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_finance_user_date" json:"user_id"`
	TransactionDate string          `gorm:"type:varchar(10);not null;index:idx_finance_user_date" json:"transaction_date"`
	Description     string          `gorm:"type:varchar(255);not null" json:"description"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Category        *string         `gorm:"type:varchar(100);index" json:"category,omitempty"`
	TransactionType *string         `gorm:"type:varchar(10)" json:"transaction_type,omitempty"`
	GiftType        *string         `gorm:"type:varchar(10)" json:"gift_type,omitempty"`
	Person          *string         `gorm:"type:varchar(100)" json:"person,omitempty"`
	Notes           *string         `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	AccountName     *string         `gorm:"type:varchar(100)" json:"account_name,omitempty"`
	IsDate          bool            `gorm:"not null;default:false" json:"is_date"`
	IsVacation      bool            `gorm:"not null;default:false" json:"is_vacation"`
	IsBirthday      bool            `gorm:"not null;default:false" json:"is_birthday"`
	IsChristmas     bool            `gorm:"not null;default:false" json:"is_christmas"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FinanceTransaction) TableName() string {
	return "finance_transactions"
}
