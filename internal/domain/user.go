package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Timezone string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	// HomeOffsetMinutes replaces the configured fallback offset for days without a sleep record.
	HomeOffsetMinutes *int      `gorm:"type:smallint" json:"home_offset_minutes,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Timezone          string `json:"timezone" validate:"required,timezone"`
	HomeOffsetMinutes *int   `json:"home_offset_minutes,omitempty" validate:"omitempty,min=-720,max=840"`
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID                uuid.UUID `json:"id"`
	Timezone          string    `json:"timezone"`
	HomeOffsetMinutes *int      `json:"home_offset_minutes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                u.ID,
		Timezone:          u.Timezone,
		HomeOffsetMinutes: u.HomeOffsetMinutes,
		CreatedAt:         u.CreatedAt,
	}
}
