package contract

import (
	"context"

	"velocity-ai-be/internal/entity"

	"github.com/google/uuid"
)

type IntegrationRepository interface {
	Create(ctx context.Context, connection *entity.IntegrationConnection) error
	Update(ctx context.Context, connection *entity.IntegrationConnection) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByUserAndProvider(ctx context.Context, userId uuid.UUID, provider string) (*entity.IntegrationConnection, error)
	FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.IntegrationConnection, error)
}
