package entity

import (
	"time"

	"github.com/google/uuid"
)

// GraphNode is a knowledge graph node with its embedded document.
// Properties hold the original key/value payload; Document is the
// rendered text the embedding was computed from.
type GraphNode struct {
	Id         uuid.UUID
	Label      string
	Name       string
	Properties map[string]string
	Document   string
	Embedding  []float32
	CreatedAt  time.Time
}

type GraphEdge struct {
	Id        uuid.UUID
	FromLabel string
	FromName  string
	Relation  string
	ToLabel   string
	ToName    string
	CreatedAt time.Time
}
