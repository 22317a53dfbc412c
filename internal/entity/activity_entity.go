// FILE: internal/entity/activity_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one line in the activity feed: an AI-driven action
// that happened against the user's connected integrations, recorded by
// the background poller or the chat pipeline.
type ActivityEntry struct {
	Id        uuid.UUID
	UserId    *uuid.UUID // nil for system-generated entries
	Action    string
	Source    string // "system", "chat", "approval"
	Mode      string // "personal" or "workspace"
	Project   string
	Details   string
	CreatedAt time.Time
}
