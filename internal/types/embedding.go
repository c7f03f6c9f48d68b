package types

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// EmbeddingDim is fixed by the embedding model (text-embedding-3-small).
const EmbeddingDim = 1536

// Embedding is one stored document chunk with its vector. The ID is derived
// from the material id and chunk index, so re-ingesting the same material
// overwrites rather than duplicates.
type Embedding struct {
	ID        string          `gorm:"column:id;primaryKey" json:"id"`
	Content   string          `gorm:"column:content;not null" json:"content"`
	Embedding pgvector.Vector `gorm:"column:embedding;type:vector(1536)" json:"-"`
	Metadata  datatypes.JSON  `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt time.Time       `gorm:"not null;default:now()" json:"created_at"`
}

func (Embedding) TableName() string { return "embeddings" }

// ChunkMetadata is the jsonb payload stored next to each chunk and echoed
// back on search results.
type ChunkMetadata struct {
	Title       string `json:"title,omitempty"`
	Type        string `json:"type,omitempty"`
	CourseID    string `json:"courseId"`
	MaterialID  string `json:"materialId,omitempty"`
	ChunkIndex  int    `json:"chunkIndex"`
	TotalChunks int    `json:"totalChunks,omitempty"`
}
