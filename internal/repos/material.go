package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/types"
)

type MaterialRepo interface {
	Create(ctx context.Context, tx *gorm.DB, material *types.Material) (*types.Material, error)
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Material, error)
	GetByFilePath(ctx context.Context, tx *gorm.DB, filePath string) (*types.Material, error)
	MarkProcessed(ctx context.Context, tx *gorm.DB, id uuid.UUID, chunksCount int) error
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	return &materialRepo{db: db, log: baseLog.With("repo", "MaterialRepo")}
}

func (r *materialRepo) Create(ctx context.Context, tx *gorm.DB, material *types.Material) (*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(material).Error; err != nil {
		return nil, err
	}
	return material, nil
}

func (r *materialRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Material
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *materialRepo) GetByFilePath(ctx context.Context, tx *gorm.DB, filePath string) (*types.Material, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var material types.Material
	if err := transaction.WithContext(ctx).First(&material, "file_path = ?", filePath).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

// MarkProcessed flips the one-way processed flag once ingestion finishes.
func (r *materialRepo) MarkProcessed(ctx context.Context, tx *gorm.DB, id uuid.UUID, chunksCount int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Material{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"processed": true, "chunks_count": chunksCount}).Error
}
