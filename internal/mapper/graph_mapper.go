package mapper

import (
	"encoding/json"

	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type GraphMapper struct{}

func NewGraphMapper() *GraphMapper {
	return &GraphMapper{}
}

func (m *GraphMapper) NodeToEntity(n *model.GraphNode) *entity.GraphNode {
	if n == nil {
		return nil
	}

	var properties map[string]string
	if len(n.Properties) > 0 {
		_ = json.Unmarshal(n.Properties, &properties)
	}

	return &entity.GraphNode{
		Id:         n.Id,
		Label:      n.Label,
		Name:       n.Name,
		Properties: properties,
		Document:   n.Document,
		Embedding:  n.Embedding.Slice(),
		CreatedAt:  n.CreatedAt,
	}
}

func (m *GraphMapper) NodeToModel(n *entity.GraphNode) *model.GraphNode {
	if n == nil {
		return nil
	}

	var properties datatypes.JSON
	if len(n.Properties) > 0 {
		raw, err := json.Marshal(n.Properties)
		if err == nil {
			properties = datatypes.JSON(raw)
		}
	}

	return &model.GraphNode{
		Id:         n.Id,
		Label:      n.Label,
		Name:       n.Name,
		Properties: properties,
		Document:   n.Document,
		Embedding:  pgvector.NewVector(n.Embedding),
		CreatedAt:  n.CreatedAt,
	}
}

func (m *GraphMapper) NodesToEntities(nodes []*model.GraphNode) []*entity.GraphNode {
	entities := make([]*entity.GraphNode, len(nodes))
	for i, n := range nodes {
		entities[i] = m.NodeToEntity(n)
	}
	return entities
}

func (m *GraphMapper) EdgeToEntity(e *model.GraphEdge) *entity.GraphEdge {
	if e == nil {
		return nil
	}
	return &entity.GraphEdge{
		Id:        e.Id,
		FromLabel: e.FromLabel,
		FromName:  e.FromName,
		Relation:  e.Relation,
		ToLabel:   e.ToLabel,
		ToName:    e.ToName,
		CreatedAt: e.CreatedAt,
	}
}

func (m *GraphMapper) EdgeToModel(e *entity.GraphEdge) *model.GraphEdge {
	if e == nil {
		return nil
	}
	return &model.GraphEdge{
		Id:        e.Id,
		FromLabel: e.FromLabel,
		FromName:  e.FromName,
		Relation:  e.Relation,
		ToLabel:   e.ToLabel,
		ToName:    e.ToName,
		CreatedAt: e.CreatedAt,
	}
}
