package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/types"
	"github.com/campushq/course-assistant-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "course_assistant", log)
	postgresSSL := utils.GetEnv("POSTGRES_SSLMODE", "disable", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName, postgresSSL)

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB { return s.db }

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	return s.db.AutoMigrate(
		&types.Course{},
		&types.Enrollment{},
		&types.Material{},
		&types.StudentQuery{},
	)
}

// EnsureVectorStore provisions everything the similarity search needs:
// the pgvector extension, the embeddings table, an ANN index, and the
// match_documents SQL function the retrieval path calls. Safe to run
// repeatedly.
func (s *PostgresService) EnsureVectorStore() error {
	s.log.Info("Provisioning vector store...")

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector;`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS embeddings (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			embedding vector(%d),
			metadata JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`, types.EmbeddingDim),

		`CREATE INDEX IF NOT EXISTS embeddings_embedding_idx
			ON embeddings USING ivfflat (embedding vector_cosine_ops)
			WITH (lists = 100);`,

		fmt.Sprintf(`CREATE OR REPLACE FUNCTION match_documents(
			query_embedding vector(%d),
			match_threshold FLOAT,
			match_count INT,
			course_id TEXT
		)
		RETURNS TABLE (
			id TEXT,
			content TEXT,
			metadata JSONB,
			similarity FLOAT
		)
		LANGUAGE plpgsql
		AS $$
		BEGIN
			RETURN QUERY
			SELECT
				embeddings.id,
				embeddings.content,
				embeddings.metadata,
				1 - (embeddings.embedding <=> query_embedding) AS similarity
			FROM embeddings
			WHERE embeddings.metadata->>'courseId' = course_id
				AND 1 - (embeddings.embedding <=> query_embedding) > match_threshold
			ORDER BY similarity DESC
			LIMIT match_count;
		END;
		$$;`, types.EmbeddingDim),
	}

	for _, stmt := range stmts {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("vector store provisioning failed: %w", err)
		}
	}

	s.log.Info("Vector store ready")
	return nil
}
