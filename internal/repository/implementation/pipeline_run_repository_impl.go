package implementation

import (
	"context"
	"errors"

	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/mapper"
	"velocity-ai-be/internal/model"
	"velocity-ai-be/internal/repository/contract"
	"velocity-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PipelineRunRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PipelineRunMapper
}

func NewPipelineRunRepository(db *gorm.DB) contract.PipelineRunRepository {
	return &PipelineRunRepositoryImpl{
		db:     db,
		mapper: mapper.NewPipelineRunMapper(),
	}
}

func (r *PipelineRunRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PipelineRunRepositoryImpl) Create(ctx context.Context, run *entity.PipelineRun) error {
	m := r.mapper.ToModel(run)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*run = *r.mapper.ToEntity(m)
	return nil
}

func (r *PipelineRunRepositoryImpl) Update(ctx context.Context, run *entity.PipelineRun) error {
	m := r.mapper.ToModel(run)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*run = *r.mapper.ToEntity(m)
	return nil
}

func (r *PipelineRunRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PipelineRun{}, id).Error
}

func (r *PipelineRunRepositoryImpl) FindLatestByRunKey(ctx context.Context, runKey string) (*entity.PipelineRun, error) {
	var m model.PipelineRun
	err := r.db.WithContext(ctx).
		Where("run_key = ?", runKey).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PipelineRunRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PipelineRun, error) {
	var m model.PipelineRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PipelineRunRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PipelineRun, error) {
	var models []*model.PipelineRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PipelineRunRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PipelineRun{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
