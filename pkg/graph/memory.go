package graph

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const (
	nodesKey = "graph:nodes"
	edgesKey = "graph:edges"
)

type memoryNode struct {
	Label      string
	Properties map[string]string
}

type memoryEdge struct {
	From     string
	Relation string
	To       string
}

// InMemoryStore keeps the knowledge graph in an injected KV store.
// It is the fallback when no database is configured and the default
// for local development; contents survive as long as the KV does.
type InMemoryStore struct {
	kv KV
	mu sync.Mutex
}

func NewInMemoryStore(kv KV) *InMemoryStore {
	return &InMemoryStore{kv: kv}
}

func (s *InMemoryStore) nodes() []memoryNode {
	if v, ok := s.kv.Get(nodesKey); ok {
		if nodes, ok := v.([]memoryNode); ok {
			return nodes
		}
	}
	return nil
}

func (s *InMemoryStore) edges() []memoryEdge {
	if v, ok := s.kv.Get(edgesKey); ok {
		if edges, ok := v.([]memoryEdge); ok {
			return edges
		}
	}
	return nil
}

func (s *InMemoryStore) Store(ctx context.Context, label string, properties map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	props := make(map[string]string, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	s.kv.Set(nodesKey, append(s.nodes(), memoryNode{Label: label, Properties: props}))
	return nil
}

func (s *InMemoryStore) Relate(ctx context.Context, fromLabel, fromName, relation, toLabel, toName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edge := memoryEdge{
		From:     fmt.Sprintf("%s:%s", fromLabel, fromName),
		Relation: relation,
		To:       fmt.Sprintf("%s:%s", toLabel, toName),
	}
	s.kv.Set(edgesKey, append(s.edges(), edge))
	return nil
}

// Query does a case-insensitive substring match across every node's
// label and properties.
func (s *InMemoryStore) Query(ctx context.Context, topic string) (string, error) {
	if topic == "" {
		return "Provide a topic to query.", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(topic)
	var lines []string
	for _, n := range s.nodes() {
		haystack := strings.ToLower(n.Label + " " + FormatProperties(n.Properties))
		if strings.Contains(haystack, needle) {
			lines = append(lines, fmt.Sprintf("• %s: %s", n.Label, FormatProperties(n.Properties)))
		}
	}
	if len(lines) == 0 {
		return fmt.Sprintf("No context found for '%s'.", topic), nil
	}
	return strings.Join(lines, "\n"), nil
}

func (s *InMemoryStore) Tasks(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []map[string]string
	for _, n := range s.nodes() {
		if n.Label == "Task" {
			tasks = append(tasks, n.Properties)
		}
	}
	if len(tasks) == 0 {
		return "No tasks stored yet.", nil
	}
	return FormatTaskLines(tasks), nil
}
