package dto

import (
	"time"

	"github.com/google/uuid"
)

type ActivityEntryResponse struct {
	Id        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Source    string    `json:"source"`
	Mode      string    `json:"mode"`
	Project   string    `json:"project,omitempty"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}

type ActivityFeedResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
	Total   int64                   `json:"total"`
}
