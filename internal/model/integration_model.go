package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntegrationConnection struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index:idx_integrations_user_provider,priority:1"`
	Provider     string    `gorm:"type:varchar(50);not null;index:idx_integrations_user_provider,priority:2"`
	AccessToken  string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text"`
	TokenExpiry  *time.Time
	Scopes       string         `gorm:"type:text"`
	Status       string         `gorm:"type:varchar(20);not null;default:'connected'"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (IntegrationConnection) TableName() string {
	return "integration_connections"
}
