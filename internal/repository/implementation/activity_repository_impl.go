package implementation

import (
	"context"
	"time"

	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/mapper"
	"velocity-ai-be/internal/model"
	"velocity-ai-be/internal/repository/contract"
	"velocity-ai-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ActivityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActivityMapper
}

func NewActivityRepository(db *gorm.DB) contract.ActivityRepository {
	return &ActivityRepositoryImpl{
		db:     db,
		mapper: mapper.NewActivityMapper(),
	}
}

func (r *ActivityRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ActivityRepositoryImpl) Create(ctx context.Context, entry *entity.ActivityEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *ActivityRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*entity.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var models []*model.ActivityEntry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ActivityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityEntry, error) {
	var models []*model.ActivityEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ActivityRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ActivityEntry{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ActivityRepositoryImpl) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ActivityEntry{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *ActivityRepositoryImpl) TrimOldest(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	subQuery := r.db.Model(&model.ActivityEntry{}).
		Select("id").
		Order("created_at DESC").
		Limit(keep)
	return r.db.WithContext(ctx).
		Where("id NOT IN (?)", subQuery).
		Delete(&model.ActivityEntry{}).Error
}
