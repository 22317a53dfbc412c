package graph

import (
	"context"
	"strings"
	"testing"
)

// mapKV is a plain map-backed KV for tests.
type mapKV struct {
	data map[string]interface{}
}

func newMapKV() *mapKV {
	return &mapKV{data: make(map[string]interface{})}
}

func (m *mapKV) Get(key string) (interface{}, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mapKV) Set(key string, value interface{}) {
	m.data[key] = value
}

func (m *mapKV) Delete(key string) {
	delete(m.data, key)
}

func TestFormatProperties(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]string
		want  string
	}{
		{
			name:  "empty",
			props: nil,
			want:  "{}",
		},
		{
			name:  "single",
			props: map[string]string{"title": "Fix login bug"},
			want:  "{title: Fix login bug}",
		},
		{
			name:  "sorted keys",
			props: map[string]string{"title": "Fix login bug", "priority": "high"},
			want:  "{priority: high, title: Fix login bug}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatProperties(tt.props); got != tt.want {
				t.Errorf("FormatProperties() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInMemoryStoreQuery(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(newMapKV())

	if err := store.Store(ctx, "Task", map[string]string{"title": "Fix login bug", "priority": "high"}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := store.Store(ctx, "Project", map[string]string{"name": "Auth Module"}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	got, err := store.Query(ctx, "login")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !strings.Contains(got, "• Task:") || !strings.Contains(got, "Fix login bug") {
		t.Errorf("Query(login) = %q, want Task node line", got)
	}
	if strings.Contains(got, "Auth Module") {
		t.Errorf("Query(login) = %q, should not match Project node", got)
	}

	// Match is case-insensitive and covers the label too.
	got, err = store.Query(ctx, "project")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !strings.Contains(got, "Auth Module") {
		t.Errorf("Query(project) = %q, want Project node line", got)
	}
}

func TestInMemoryStoreQueryNoMatch(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(newMapKV())

	got, err := store.Query(ctx, "kubernetes")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got != "No context found for 'kubernetes'." {
		t.Errorf("Query() = %q, want no-context sentinel", got)
	}
}

func TestInMemoryStoreQueryEmptyTopic(t *testing.T) {
	store := NewInMemoryStore(newMapKV())

	got, err := store.Query(context.Background(), "")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got != "Provide a topic to query." {
		t.Errorf("Query(\"\") = %q", got)
	}
}

func TestInMemoryStoreTasks(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(newMapKV())

	got, err := store.Tasks(ctx)
	if err != nil {
		t.Fatalf("Tasks() error = %v", err)
	}
	if got != "No tasks stored yet." {
		t.Errorf("Tasks() on empty store = %q", got)
	}

	if err := store.Store(ctx, "Task", map[string]string{"title": "Ship release", "priority": "high"}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := store.Store(ctx, "Person", map[string]string{"name": "Nakul"}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	got, err = store.Tasks(ctx)
	if err != nil {
		t.Fatalf("Tasks() error = %v", err)
	}
	if got != "• Ship release [high]" {
		t.Errorf("Tasks() = %q, want task line only", got)
	}
}

func TestInMemoryStoreRelate(t *testing.T) {
	ctx := context.Background()
	kv := newMapKV()
	store := NewInMemoryStore(kv)

	if err := store.Relate(ctx, "Person", "Nakul", "WORKS_ON", "Project", "Auth Module"); err != nil {
		t.Fatalf("Relate() error = %v", err)
	}

	v, ok := kv.Get("graph:edges")
	if !ok {
		t.Fatal("expected edges key in KV after Relate()")
	}
	edges := v.([]memoryEdge)
	if len(edges) != 1 {
		t.Fatalf("len(edges) = %d, want 1", len(edges))
	}
	if edges[0].From != "Person:Nakul" || edges[0].Relation != "WORKS_ON" || edges[0].To != "Project:Auth Module" {
		t.Errorf("edge = %+v", edges[0])
	}
}
