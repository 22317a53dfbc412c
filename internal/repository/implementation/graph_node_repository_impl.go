package implementation

import (
	"context"

	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/mapper"
	"velocity-ai-be/internal/model"
	"velocity-ai-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type GraphNodeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GraphMapper
}

func NewGraphNodeRepository(db *gorm.DB) contract.GraphNodeRepository {
	return &GraphNodeRepositoryImpl{
		db:     db,
		mapper: mapper.NewGraphMapper(),
	}
}

func (r *GraphNodeRepositoryImpl) Create(ctx context.Context, node *entity.GraphNode) error {
	m := r.mapper.NodeToModel(node)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*node = *r.mapper.NodeToEntity(m)
	return nil
}

func (r *GraphNodeRepositoryImpl) CreateEdge(ctx context.Context, edge *entity.GraphEdge) error {
	m := r.mapper.EdgeToModel(edge)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*edge = *r.mapper.EdgeToEntity(m)
	return nil
}

func (r *GraphNodeRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.GraphNode, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.GraphNode

	// pgvector cosine distance: embedding <=> vector
	err := r.db.WithContext(ctx).
		Order(gorm.Expr("embedding <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.NodesToEntities(models), nil
}

func (r *GraphNodeRepositoryImpl) FindByLabel(ctx context.Context, label string) ([]*entity.GraphNode, error) {
	var models []*model.GraphNode
	err := r.db.WithContext(ctx).
		Where("label = ?", label).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.NodesToEntities(models), nil
}

func (r *GraphNodeRepositoryImpl) FindEdgesFrom(ctx context.Context, fromLabel, fromName string) ([]*entity.GraphEdge, error) {
	var models []*model.GraphEdge
	err := r.db.WithContext(ctx).
		Where("from_label = ? AND from_name = ?", fromLabel, fromName).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	edges := make([]*entity.GraphEdge, len(models))
	for i, m := range models {
		edges[i] = r.mapper.EdgeToEntity(m)
	}
	return edges, nil
}
