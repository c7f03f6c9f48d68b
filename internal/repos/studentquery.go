package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/types"
)

const recentQueryLimit = 10

type StudentQueryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, query *types.StudentQuery) (*types.StudentQuery, error)
	ListRecent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, courseID *uuid.UUID) ([]*types.StudentQuery, error)
}

type studentQueryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentQueryRepo(db *gorm.DB, baseLog *logger.Logger) StudentQueryRepo {
	return &studentQueryRepo{db: db, log: baseLog.With("repo", "StudentQueryRepo")}
}

func (r *studentQueryRepo) Create(ctx context.Context, tx *gorm.DB, query *types.StudentQuery) (*types.StudentQuery, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(query).Error; err != nil {
		return nil, err
	}
	return query, nil
}

func (r *studentQueryRepo) ListRecent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, courseID *uuid.UUID) ([]*types.StudentQuery, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Where("student_id = ?", studentID)
	if courseID != nil {
		q = q.Where("course_id = ?", *courseID)
	}
	var results []*types.StudentQuery
	if err := q.Order("created_at DESC").Limit(recentQueryLimit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
