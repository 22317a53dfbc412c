package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByRunKey struct {
	RunKey string
}

func (s ByRunKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("run_key = ?", s.RunKey)
}

type RequiresApproval struct{}

func (s RequiresApproval) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("requires_approval = ?", true)
}

type ByApprovalStatus struct {
	Status string
}

func (s ByApprovalStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("approval_status = ?", s.Status)
}

type CreatedSince struct {
	Since time.Time
}

func (s CreatedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Since)
}

type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}
