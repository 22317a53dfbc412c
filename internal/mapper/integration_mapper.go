package mapper

import (
	"time"

	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/model"

	"gorm.io/gorm"
)

type IntegrationMapper struct{}

func NewIntegrationMapper() *IntegrationMapper {
	return &IntegrationMapper{}
}

func (m *IntegrationMapper) ToEntity(c *model.IntegrationConnection) *entity.IntegrationConnection {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.IntegrationConnection{
		Id:           c.Id,
		UserId:       c.UserId,
		Provider:     c.Provider,
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenExpiry:  c.TokenExpiry,
		Scopes:       c.Scopes,
		Status:       entity.IntegrationStatus(c.Status),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *IntegrationMapper) ToModel(c *entity.IntegrationConnection) *model.IntegrationConnection {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.IntegrationConnection{
		Id:           c.Id,
		UserId:       c.UserId,
		Provider:     c.Provider,
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenExpiry:  c.TokenExpiry,
		Scopes:       c.Scopes,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    gorm.DeletedAt{},
	}
}

func (m *IntegrationMapper) ToEntities(connections []*model.IntegrationConnection) []*entity.IntegrationConnection {
	entities := make([]*entity.IntegrationConnection, len(connections))
	for i, c := range connections {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
