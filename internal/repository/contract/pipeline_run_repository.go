package contract

import (
	"context"

	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PipelineRunRepository interface {
	Create(ctx context.Context, run *entity.PipelineRun) error
	Update(ctx context.Context, run *entity.PipelineRun) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindLatestByRunKey returns the newest run recorded under the key,
	// or nil when the key has never run.
	FindLatestByRunKey(ctx context.Context, runKey string) (*entity.PipelineRun, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PipelineRun, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PipelineRun, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
