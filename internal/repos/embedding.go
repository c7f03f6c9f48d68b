package repos

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/types"
)

type EmbeddingRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, embeddings []*types.Embedding) error
	MatchDocuments(ctx context.Context, queryEmbedding []float32, threshold float64, count int, courseID string) ([]types.SearchResult, error)
}

type embeddingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmbeddingRepo(db *gorm.DB, baseLog *logger.Logger) EmbeddingRepo {
	return &embeddingRepo{db: db, log: baseLog.With("repo", "EmbeddingRepo")}
}

func (r *embeddingRepo) Upsert(ctx context.Context, tx *gorm.DB, embeddings []*types.Embedding) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(embeddings) == 0 {
		return nil
	}

	// Keep batches small because Content is large.
	const batchSize = 100

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		CreateInBatches(embeddings, batchSize).Error
}

// MatchDocuments delegates similarity ranking entirely to the
// match_documents SQL function; rows come back ordered by descending
// similarity and already filtered to the requested course.
func (r *embeddingRepo) MatchDocuments(ctx context.Context, queryEmbedding []float32, threshold float64, count int, courseID string) ([]types.SearchResult, error) {
	var results []types.SearchResult
	if err := r.db.WithContext(ctx).
		Raw(`SELECT * FROM match_documents(?, ?, ?, ?)`,
			pgvector.NewVector(queryEmbedding), threshold, count, courseID).
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
