// FILE: internal/entity/integration_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type IntegrationStatus string

const (
	IntegrationStatusConnected IntegrationStatus = "connected"
	IntegrationStatusRevoked   IntegrationStatus = "revoked"
)

// IntegrationConnection stores the OAuth credentials for one external
// provider (github, slack, google) linked to a user account.
type IntegrationConnection struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Provider     string
	AccessToken  string
	RefreshToken string
	TokenExpiry  *time.Time
	Scopes       string
	Status       IntegrationStatus
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
