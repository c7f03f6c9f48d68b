package types

import (
	"time"

	"github.com/google/uuid"
)

// StudentQuery is one chat interaction, appended at answer time and never
// mutated afterwards.
type StudentQuery struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Query     string    `gorm:"column:query;not null" json:"query"`
	Response  string    `gorm:"column:response" json:"response"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (StudentQuery) TableName() string { return "student_queries" }
