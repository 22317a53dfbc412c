// FILE: internal/entity/pipeline_run_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type PipelineRunStatus string

const (
	PipelineRunStatusCompleted PipelineRunStatus = "completed"
	PipelineRunStatusDegraded  PipelineRunStatus = "degraded"
)

// PipelineRun is the durable record of one agent pipeline execution.
// The checkpoint store keeps the hot per-step state; this row is what
// the dashboard and approval flow read after the run finishes.
type PipelineRun struct {
	Id                uuid.UUID
	RunKey            string // executor run id, e.g. conversation id or "system_polling"
	UserId            *uuid.UUID
	Mode              string
	UserInput         string
	Summary           string
	RequiresApproval  bool
	ApprovalStatus    string
	ActionType        string
	ActionDescription string
	ActionStatus      string
	Sources           []string
	Status            PipelineRunStatus
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}
