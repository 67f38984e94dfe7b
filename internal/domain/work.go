package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkSession is a tracked time-entry from Rize. StartTime and EndTime are UTC.
type WorkSession struct {
	SessionID       string    `gorm:"type:varchar(50);primaryKey" json:"session_id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_work_sessions_user_date" json:"user_id"`
	Title           string    `gorm:"type:varchar(255)" json:"title"`
	Description     string    `gorm:"type:varchar(1000)" json:"description"`
	Type            string    `gorm:"type:varchar(50);index" json:"type"`
	Source          string    `gorm:"type:varchar(50)" json:"source"`
	StartTime       time.Time `gorm:"not null;index:idx_work_sessions_timespan" json:"start_time"`
	EndTime         time.Time `gorm:"not null;index:idx_work_sessions_timespan" json:"end_time"`
	Date            string    `gorm:"type:varchar(10);not null;index:idx_work_sessions_user_date" json:"date"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WorkSession) TableName() string {
	return "work_sessions"
}

// WorkSummary is Rize's per-day rollup. Times are in seconds as reported by Rize.
type WorkSummary struct {
	UserID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Date                    string    `gorm:"type:varchar(10);primaryKey" json:"date"`
	Wday                    string    `gorm:"type:varchar(10);not null" json:"wday"`
	FocusTime               int       `gorm:"not null" json:"focus_time"`
	BreakTime               int       `gorm:"not null" json:"break_time"`
	MeetingTime             int       `gorm:"not null" json:"meeting_time"`
	TrackedTime             int       `gorm:"not null" json:"tracked_time"`
	WorkHours               int       `gorm:"not null" json:"work_hours"`
	DailyMeetingTimeAverage int       `gorm:"not null" json:"daily_meeting_time_average"`
	DailyTrackedTimeAverage int       `gorm:"not null" json:"daily_tracked_time_average"`
	DailyFocusTimeAverage   int       `gorm:"not null" json:"daily_focus_time_average"`
	DailyWorkHoursAverage   int       `gorm:"not null" json:"daily_work_hours_average"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WorkSummary) TableName() string {
	return "work_summaries"
}

// WorkHoursResponse is the dashboard view of tracked time bucketed by local day and hour.
type WorkHoursResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	// Days holds per-date minutes for each local hour 0-23.
	Days []DayHours `json:"days"`
	// HourOfDay is hours worked per local hour across the range.
	HourOfDay [24]float64 `json:"hour_of_day"`
	// DayOfWeek is hours worked per weekday, Sunday first.
	DayOfWeek     [7]float64 `json:"day_of_week"`
	TotalHours    float64    `json:"total_hours"`
	FallbackDates []string   `json:"fallback_dates,omitempty"`
}

type DayHours struct {
	Date    string      `json:"date"`
	Minutes [24]float64 `json:"minutes"`
}
