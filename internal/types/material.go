package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Material is one uploaded document for a course. Processed and ChunksCount
// transition exactly once, when ingestion completes.
type Material struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Title        string         `gorm:"column:title" json:"title"`
	Description  string         `gorm:"column:description" json:"description"`
	FileName     string         `gorm:"column:file_name;not null" json:"file_name"`
	FilePath     string         `gorm:"column:file_path;not null;index" json:"file_path"`
	FileType     string         `gorm:"column:file_type" json:"file_type"`
	FileSize     int64          `gorm:"column:file_size" json:"file_size"`
	MaterialType string         `gorm:"column:material_type" json:"material_type"`
	Processed    bool           `gorm:"column:processed;not null;default:false" json:"processed"`
	ChunksCount  int            `gorm:"column:chunks_count;not null;default:0" json:"chunks_count"`
	Metadata     datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (Material) TableName() string { return "materials" }
