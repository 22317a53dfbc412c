// Package graph provides the agent's long-term knowledge memory. Nodes
// (tasks, people, projects, concepts) and relationships accumulate across
// pipeline runs and are retrieved as plain-text context for prompts.
//
// Two implementations exist: an in-process store for keyless/dev setups
// and a pgvector-backed store that retrieves by embedding similarity.
package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Memory is the knowledge-graph surface used by the agent steps.
// All methods return human-readable text, not structured records:
// results are spliced directly into LLM prompts.
type Memory interface {
	// Query returns context lines related to topic, or a
	// "No context found" sentinel when nothing matches.
	Query(ctx context.Context, topic string) (string, error)

	// Store persists a node with the given label and properties.
	Store(ctx context.Context, label string, properties map[string]string) error

	// Relate creates a directed relationship between two named nodes.
	Relate(ctx context.Context, fromLabel, fromName, relation, toLabel, toName string) error

	// Tasks lists all stored Task nodes ordered by priority.
	Tasks(ctx context.Context) (string, error)
}

// KV is the minimal key-value surface the in-process store persists
// through. It is satisfied by the go-cache backed repository and by a
// plain map in tests.
type KV interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Delete(key string)
}

// FormatProperties renders a property map deterministically, sorted by
// key, e.g. "{priority: high, title: Fix login bug}".
func FormatProperties(props map[string]string) string {
	if len(props) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", k, props[k]))
	}
	sb.WriteString("}")
	return sb.String()
}

func orPlaceholder(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

// FormatTaskLines renders task property maps as "• title [priority]" lines.
func FormatTaskLines(tasks []map[string]string) string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, fmt.Sprintf("• %s [%s]", orPlaceholder(t["title"]), orPlaceholder(t["priority"])))
	}
	return strings.Join(lines, "\n")
}
