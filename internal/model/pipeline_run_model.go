package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PipelineRun struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunKey            string         `gorm:"type:varchar(255);not null;index"`
	UserId            *uuid.UUID     `gorm:"type:uuid;index"`
	Mode              string         `gorm:"type:varchar(20);not null"`
	UserInput         string         `gorm:"type:text"`
	Summary           string         `gorm:"type:text"`
	RequiresApproval  bool           `gorm:"default:false"`
	ApprovalStatus    string         `gorm:"type:varchar(20);not null;default:'none'"`
	ActionType        string         `gorm:"type:varchar(50)"`
	ActionDescription string         `gorm:"type:text"`
	ActionStatus      string         `gorm:"type:varchar(50)"`
	Sources           datatypes.JSON `gorm:"type:jsonb"`
	Status            string         `gorm:"type:varchar(20);not null;default:'completed'"`
	CreatedAt         time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
}

func (PipelineRun) TableName() string {
	return "pipeline_runs"
}
