package types

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment pairs one student with one course; the composite unique index
// keeps the pairing unique.
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_student_course" json:"student_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_student_course;index" json:"course_id"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Enrollment) TableName() string { return "enrollments" }
