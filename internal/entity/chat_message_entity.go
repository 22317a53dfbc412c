package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Content        string
	Role           string
	ConversationId uuid.UUID `gorm:"type:uuid;index"`
	// PipelineRunId ties an assistant message back to the run that
	// produced it. Nil for user messages and direct-chat replies.
	PipelineRunId *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
