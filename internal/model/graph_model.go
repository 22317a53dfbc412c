package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type GraphNode struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Label      string          `gorm:"type:varchar(100);not null;index"`
	Name       string          `gorm:"type:varchar(255);index"`
	Properties datatypes.JSON  `gorm:"type:jsonb"`
	Document   string          `gorm:"type:text"`
	Embedding  pgvector.Vector `gorm:"type:vector(768)"` // Gemini text-embedding-004 uses 768 dimensions
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (GraphNode) TableName() string {
	return "graph_nodes"
}

type GraphEdge struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FromLabel string    `gorm:"type:varchar(100);not null;index:idx_graph_edges_from,priority:1"`
	FromName  string    `gorm:"type:varchar(255);not null;index:idx_graph_edges_from,priority:2"`
	Relation  string    `gorm:"type:varchar(100);not null"`
	ToLabel   string    `gorm:"type:varchar(100);not null;index:idx_graph_edges_to,priority:1"`
	ToName    string    `gorm:"type:varchar(255);not null;index:idx_graph_edges_to,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (GraphEdge) TableName() string {
	return "graph_edges"
}
