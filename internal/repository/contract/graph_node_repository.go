package contract

import (
	"context"

	"velocity-ai-be/internal/entity"
)

type GraphNodeRepository interface {
	Create(ctx context.Context, node *entity.GraphNode) error
	CreateEdge(ctx context.Context, edge *entity.GraphEdge) error
	// SearchSimilar orders nodes by pgvector cosine distance to the
	// query embedding and returns the closest limit rows.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.GraphNode, error)
	FindByLabel(ctx context.Context, label string) ([]*entity.GraphNode, error)
	FindEdgesFrom(ctx context.Context, fromLabel, fromName string) ([]*entity.GraphEdge, error)
}
