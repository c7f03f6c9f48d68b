package types

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Code        string    `gorm:"column:code;not null" json:"code"`
	Description string    `gorm:"column:description" json:"description"`
	Term        string    `gorm:"column:term;not null" json:"term"`
	Department  string    `gorm:"column:department;not null" json:"department"`
	ProfessorID uuid.UUID `gorm:"type:uuid;not null;index" json:"professor_id"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Course) TableName() string { return "courses" }
