package domain

import (
	"time"

	"github.com/google/uuid"
)

// PhaseAwake is the phase code for an awake 5-minute slot.
const PhaseAwake = '4'

// SleepKind distinguishes the main sleep of a day from naps.
type SleepKind string

const (
	SleepKindMain SleepKind = "main"
	SleepKindNap  SleepKind = "nap"
)

// RawSleepSession is a sleep session as returned by the Oura sleep endpoint.
// Durations are in seconds.
type RawSleepSession struct {
	ID                 string    `json:"id" validate:"required"`
	Day                string    `json:"day" validate:"required,datetime=2006-01-02"`
	BedtimeStart       time.Time `json:"bedtime_start" validate:"required"`
	BedtimeEnd         time.Time `json:"bedtime_end" validate:"required,gtfield=BedtimeStart"`
	TotalSleepDuration int       `json:"total_sleep_duration" validate:"min=0"`
	TimeInBed          int       `json:"time_in_bed" validate:"min=0"`
	AwakeTime          int       `json:"awake_time" validate:"min=0"`
	SleepPhase5Min     string    `json:"sleep_phase_5_min" validate:"required"`
	Type               string    `json:"type,omitempty"`

	DeepSleepDuration  *int     `json:"deep_sleep_duration,omitempty"`
	LightSleepDuration *int     `json:"light_sleep_duration,omitempty"`
	RemSleepDuration   *int     `json:"rem_sleep_duration,omitempty"`
	RestlessPeriods    *int     `json:"restless_periods,omitempty"`
	AverageHeartRate   *float64 `json:"average_heart_rate,omitempty"`
	AverageHRV         *float64 `json:"average_hrv,omitempty"`
	Latency            *int     `json:"latency,omitempty"`
}

// SleepMeasures holds the columns shared by main sleep and nap records.
// All timestamps are UTC instants; TimezoneOffset is the offset of bedtime_start in minutes.
// BedtimeStart is declared on each record because it is part of the nap natural key.
type SleepMeasures struct {
	BedtimeEnd         time.Time `gorm:"not null" json:"bedtime_end"`
	SleepStart         time.Time `gorm:"not null" json:"sleep_start"`
	SleepEnd           time.Time `gorm:"not null" json:"sleep_end"`
	TimezoneOffset     int       `gorm:"type:smallint;not null" json:"timezone_offset"`
	TotalSleepDuration int       `gorm:"not null" json:"total_sleep_duration"`
	Latency            *int      `json:"latency,omitempty"`
	TimeInBed          int       `gorm:"not null" json:"time_in_bed"`
	SleepAwakeTime     int       `gorm:"not null" json:"sleep_awake_time"`
	MidsleepAwakeTime  int       `gorm:"not null" json:"midsleep_awake_time"`
	DeepSleepDuration  int       `gorm:"not null" json:"deep_sleep_duration"`
	LightSleepDuration int       `gorm:"not null" json:"light_sleep_duration"`
	RemSleepDuration   int       `gorm:"not null" json:"rem_sleep_duration"`
	RestlessPeriods    int       `gorm:"not null" json:"restless_periods"`
	AverageHeartRate   *float64  `json:"average_heart_rate,omitempty"`
	AverageHRV         *float64  `json:"average_hrv,omitempty"`
}

// SleepRecord is the main sleep of a user's day.
type SleepRecord struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uix_sleep_user_date" json:"user_id"`
	Date   string    `gorm:"type:varchar(10);not null;uniqueIndex:uix_sleep_user_date" json:"date"`
	// BedtimeStart is a UTC instant.
	BedtimeStart time.Time `gorm:"not null" json:"bedtime_start"`
	SleepMeasures
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SleepRecord) TableName() string {
	return "sleep_records"
}

// NapRecord is a non-main sleep session. A day may hold several.
type NapRecord struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uix_nap_user_date_bedtime" json:"user_id"`
	Date   string    `gorm:"type:varchar(10);not null;uniqueIndex:uix_nap_user_date_bedtime" json:"date"`
	// BedtimeStart is a UTC instant. A day may hold several naps, told apart by it.
	BedtimeStart time.Time `gorm:"not null;uniqueIndex:uix_nap_user_date_bedtime" json:"bedtime_start"`
	SleepMeasures
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (NapRecord) TableName() string {
	return "nap_records"
}

// NapKey identifies a nap by its natural key within a user.
type NapKey struct {
	Date         string
	BedtimeStart time.Time
}

// SleepRecordResponse is the API view of a main sleep or nap record.
type SleepRecordResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Kind         SleepKind `json:"kind"`
	Date         string    `json:"date"`
	BedtimeStart time.Time `json:"bedtime_start"`
	SleepMeasures
	// Local renderings using the stored offset
	LocalSleepStart time.Time `json:"local_sleep_start"`
	LocalSleepEnd   time.Time `json:"local_sleep_end"`
}

func (s *SleepRecord) ToResponse() SleepRecordResponse {
	return newSleepRecordResponse(s.ID, s.UserID, SleepKindMain, s.Date, s.BedtimeStart, s.SleepMeasures)
}

func (n *NapRecord) ToResponse() SleepRecordResponse {
	return newSleepRecordResponse(n.ID, n.UserID, SleepKindNap, n.Date, n.BedtimeStart, n.SleepMeasures)
}

func newSleepRecordResponse(id, userID uuid.UUID, kind SleepKind, date string, bedtimeStart time.Time, m SleepMeasures) SleepRecordResponse {
	loc := time.FixedZone("", m.TimezoneOffset*60)
	return SleepRecordResponse{
		ID:              id,
		UserID:          userID,
		Kind:            kind,
		Date:            date,
		BedtimeStart:    bedtimeStart,
		SleepMeasures:   m,
		LocalSleepStart: m.SleepStart.In(loc),
		LocalSleepEnd:   m.SleepEnd.In(loc),
	}
}

// SleepRecordListResponse is the response body for listing sleep records.
type SleepRecordListResponse struct {
	Data       []SleepRecordResponse `json:"data"`
	Pagination PaginationResponse    `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// SleepRecordFilter contains filter parameters for listing sleep records.
// From and To are inclusive YYYY-MM-DD dates.
type SleepRecordFilter struct {
	Kind   SleepKind
	From   string
	To     string
	Limit  int
	Cursor string
}
