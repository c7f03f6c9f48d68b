package services

import (
	"context"

	"github.com/campushq/course-assistant-backend/internal/db"
	"github.com/campushq/course-assistant-backend/internal/platform/apierr"
	"github.com/campushq/course-assistant-backend/internal/platform/logger"
)

type ProvisionStatus struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	TablesMigrated bool   `json:"tables_migrated,omitempty"`
	BucketReady    bool   `json:"bucket_ready,omitempty"`
}

// ProvisionService backs the idempotent admin endpoints that create the
// external schema, the similarity function, and check the storage bucket.
type ProvisionService interface {
	SetupVectorStore(ctx context.Context) (*ProvisionStatus, error)
	SetupStorage(ctx context.Context) (*ProvisionStatus, error)
}

type provisionService struct {
	log      *logger.Logger
	postgres *db.PostgresService
	bucket   BucketService
}

func NewProvisionService(log *logger.Logger, postgres *db.PostgresService, bucket BucketService) ProvisionService {
	return &provisionService{
		log:      log.With("service", "ProvisionService"),
		postgres: postgres,
		bucket:   bucket,
	}
}

func (s *provisionService) SetupVectorStore(ctx context.Context) (*ProvisionStatus, error) {
	if err := s.postgres.EnsureVectorStore(); err != nil {
		return nil, apierr.Upstream("vector_store_setup_failed", err)
	}
	return &ProvisionStatus{Success: true, Message: "Vector store setup successfully"}, nil
}

func (s *provisionService) SetupStorage(ctx context.Context) (*ProvisionStatus, error) {
	status := &ProvisionStatus{Success: true, Message: "Storage setup successfully"}

	if err := s.postgres.AutoMigrateAll(); err != nil {
		return nil, apierr.Upstream("schema_migration_failed", err)
	}
	status.TablesMigrated = true

	if err := s.bucket.Ping(ctx); err != nil {
		// The bucket is externally managed; report but keep the schema work.
		s.log.Warn("storage bucket unreachable", "error", err)
		status.Success = false
		status.Message = "Storage setup completed with some issues"
	} else {
		status.BucketReady = true
	}

	return status, nil
}
