package domain

import (
	"time"

	"github.com/google/uuid"
)

// VitalsEntry is one day of manually logged vitals. Nil fields were blank in the sheet.
type VitalsEntry struct {
	UserID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Date         string     `gorm:"type:varchar(10);primaryKey" json:"date"`
	WakeUpTime   *time.Time `json:"wake_up_time,omitempty"`
	SleepMinutes *int       `json:"sleep_minutes,omitempty"`
	Weight       *float64   `json:"weight,omitempty"`
	NapMinutes   *int       `json:"nap_minutes,omitempty"`
	Drinks       *int       `json:"drinks,omitempty"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VitalsEntry) TableName() string {
	return "vitals"
}

// Empty reports whether every value column is blank.
func (v *VitalsEntry) Empty() bool {
	return v.WakeUpTime == nil && v.SleepMinutes == nil && v.Weight == nil &&
		v.NapMinutes == nil && v.Drinks == nil
}
