package model

import (
	"time"

	"github.com/google/uuid"
)

type ActivityEntry struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"type:text;not null"`
	Source    string     `gorm:"type:varchar(50);not null;default:'system'"`
	Mode      string     `gorm:"type:varchar(20);not null;default:'workspace';index"`
	Project   string     `gorm:"type:varchar(255)"`
	Details   string     `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
}

func (ActivityEntry) TableName() string {
	return "activity_entries"
}
