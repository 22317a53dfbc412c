package implementation

import (
	"context"
	"errors"

	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/mapper"
	"velocity-ai-be/internal/model"
	"velocity-ai-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntegrationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntegrationMapper
}

func NewIntegrationRepository(db *gorm.DB) contract.IntegrationRepository {
	return &IntegrationRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntegrationMapper(),
	}
}

func (r *IntegrationRepositoryImpl) Create(ctx context.Context, connection *entity.IntegrationConnection) error {
	m := r.mapper.ToModel(connection)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*connection = *r.mapper.ToEntity(m)
	return nil
}

func (r *IntegrationRepositoryImpl) Update(ctx context.Context, connection *entity.IntegrationConnection) error {
	m := r.mapper.ToModel(connection)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*connection = *r.mapper.ToEntity(m)
	return nil
}

func (r *IntegrationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.IntegrationConnection{}, id).Error
}

func (r *IntegrationRepositoryImpl) FindByUserAndProvider(ctx context.Context, userId uuid.UUID, provider string) (*entity.IntegrationConnection, error) {
	var m model.IntegrationConnection
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider = ?", userId, provider).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *IntegrationRepositoryImpl) FindAllByUser(ctx context.Context, userId uuid.UUID) ([]*entity.IntegrationConnection, error) {
	var models []*model.IntegrationConnection
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("provider ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
