package graph

import (
	"context"
	"fmt"
	"strings"

	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/repository/unitofwork"
	"velocity-ai-be/pkg/embedding"
)

const defaultQueryLimit = 5

// PgStore persists the knowledge graph in Postgres and retrieves
// context by embedding similarity (pgvector cosine distance) instead
// of substring matching, so "auth bug" finds the "login failure" node.
type PgStore struct {
	uow      unitofwork.UnitOfWork
	embedder embedding.EmbeddingProvider
	limit    int
}

func NewPgStore(uow unitofwork.UnitOfWork, embedder embedding.EmbeddingProvider) *PgStore {
	return &PgStore{
		uow:      uow,
		embedder: embedder,
		limit:    defaultQueryLimit,
	}
}

// document renders the node as the text that gets embedded.
func document(label string, props map[string]string) string {
	return fmt.Sprintf("%s %s", label, FormatProperties(props))
}

func (s *PgStore) Store(ctx context.Context, label string, properties map[string]string) error {
	doc := document(label, properties)
	res, err := s.embedder.Generate(doc, "RETRIEVAL_DOCUMENT")
	if err != nil {
		return fmt.Errorf("failed to embed graph node: %w", err)
	}

	node := &entity.GraphNode{
		Label:      label,
		Name:       nodeName(properties),
		Properties: properties,
		Document:   doc,
		Embedding:  res.Embedding.Values,
	}
	if err := s.uow.GraphNodeRepository().Create(ctx, node); err != nil {
		return fmt.Errorf("failed to store graph node: %w", err)
	}
	return nil
}

// nodeName picks the property used to address the node in relationships.
func nodeName(props map[string]string) string {
	if name, ok := props["name"]; ok {
		return name
	}
	return props["title"]
}

func (s *PgStore) Relate(ctx context.Context, fromLabel, fromName, relation, toLabel, toName string) error {
	edge := &entity.GraphEdge{
		FromLabel: fromLabel,
		FromName:  fromName,
		Relation:  relation,
		ToLabel:   toLabel,
		ToName:    toName,
	}
	if err := s.uow.GraphNodeRepository().CreateEdge(ctx, edge); err != nil {
		return fmt.Errorf("failed to store graph relationship: %w", err)
	}
	return nil
}

func (s *PgStore) Query(ctx context.Context, topic string) (string, error) {
	if topic == "" {
		return "Provide a topic to query.", nil
	}

	res, err := s.embedder.Generate(topic, "RETRIEVAL_QUERY")
	if err != nil {
		return "", fmt.Errorf("failed to embed query: %w", err)
	}

	nodes, err := s.uow.GraphNodeRepository().SearchSimilar(ctx, res.Embedding.Values, s.limit)
	if err != nil {
		return "", fmt.Errorf("failed to search graph: %w", err)
	}
	if len(nodes) == 0 {
		return fmt.Sprintf("No context found for '%s'.", topic), nil
	}

	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, fmt.Sprintf("• %s: %s", n.Label, FormatProperties(n.Properties)))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *PgStore) Tasks(ctx context.Context) (string, error) {
	nodes, err := s.uow.GraphNodeRepository().FindByLabel(ctx, "Task")
	if err != nil {
		return "", fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(nodes) == 0 {
		return "No tasks stored yet.", nil
	}

	tasks := make([]map[string]string, 0, len(nodes))
	for _, n := range nodes {
		tasks = append(tasks, n.Properties)
	}
	return FormatTaskLines(tasks), nil
}
