package domain

import (
	"time"

	"github.com/google/uuid"
)

// IntegrationType names an external data provider.
type IntegrationType string

const (
	IntegrationOura IntegrationType = "oura"
	IntegrationRize IntegrationType = "rize"
)

func (t IntegrationType) Valid() bool {
	return t == IntegrationOura || t == IntegrationRize
}

type IntegrationStatus string

const (
	IntegrationActive   IntegrationStatus = "active"
	IntegrationInactive IntegrationStatus = "inactive"
)

// Integration holds a user's provider credentials and the outcome of the last sync.
type Integration struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uix_integration_user_type" json:"user_id"`
	Type           IntegrationType   `gorm:"type:varchar(20);not null;uniqueIndex:uix_integration_user_type" json:"type"`
	AccessToken    string            `gorm:"type:text;not null" json:"-"`
	Status         IntegrationStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	LastSyncAt     *time.Time        `json:"last_sync_at,omitempty"`
	LastSyncStatus *string           `gorm:"type:varchar(20)" json:"last_sync_status,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Integration) TableName() string {
	return "integrations"
}

const (
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// UpsertIntegrationRequest is the request body for connecting a provider.
type UpsertIntegrationRequest struct {
	AccessToken string            `json:"access_token" validate:"required,max=4096"`
	Status      IntegrationStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type IntegrationResponse struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"user_id"`
	Type           IntegrationType   `json:"type"`
	Status         IntegrationStatus `json:"status"`
	LastSyncAt     *time.Time        `json:"last_sync_at,omitempty"`
	LastSyncStatus *string           `json:"last_sync_status,omitempty"`
}

func (i *Integration) ToResponse() IntegrationResponse {
	return IntegrationResponse{
		ID:             i.ID,
		UserID:         i.UserID,
		Type:           i.Type,
		Status:         i.Status,
		LastSyncAt:     i.LastSyncAt,
		LastSyncStatus: i.LastSyncStatus,
	}
}
