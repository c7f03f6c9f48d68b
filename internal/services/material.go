package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/campushq/course-assistant-backend/internal/chunker"
	"github.com/campushq/course-assistant-backend/internal/clients/openai"
	"github.com/campushq/course-assistant-backend/internal/platform/apierr"
	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/repos"
	"github.com/campushq/course-assistant-backend/internal/types"
)

type IngestInput struct {
	RequesterID   uuid.UUID
	RequesterRole string
	CourseID      uuid.UUID
	MaterialType  string
	Title         string
	Description   string
	FileName      string
	FileType      string
	FileSize      int64
	Content       io.Reader
}

type IngestResult struct {
	MaterialID      uuid.UUID `json:"material_id"`
	ChunksProcessed int       `json:"chunks_processed"`
}

// MaterialService stores uploaded course documents and turns them into
// embedded chunks the retrieval path can match against.
type MaterialService interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*types.Material, error)
	Ingest(ctx context.Context, input IngestInput) (*IngestResult, error)
	ProcessDocument(ctx context.Context, filePath string, meta types.ChunkMetadata) (int, error)
}

type materialService struct {
	db            *gorm.DB
	log           *logger.Logger
	courseRepo    repos.CourseRepo
	materialRepo  repos.MaterialRepo
	embeddingRepo repos.EmbeddingRepo
	bucket        BucketService
	ai            openai.Client
}

func NewMaterialService(db *gorm.DB, log *logger.Logger, courseRepo repos.CourseRepo, materialRepo repos.MaterialRepo, embeddingRepo repos.EmbeddingRepo, bucket BucketService, ai openai.Client) MaterialService {
	return &materialService{
		db:            db,
		log:           log.With("service", "MaterialService"),
		courseRepo:    courseRepo,
		materialRepo:  materialRepo,
		embeddingRepo: embeddingRepo,
		bucket:        bucket,
		ai:            ai,
	}
}

func (s *materialService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*types.Material, error) {
	materials, err := s.materialRepo.ListByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Upstream("load_materials_failed", err)
	}
	return materials, nil
}

// Ingest uploads the file to the storage service, records the material,
// then chunks and embeds its text. The processed flag and chunk count flip
// once, when embedding finishes.
func (s *materialService) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	// Only the professor who owns the course may upload materials to it.
	if input.RequesterRole != RoleProfessor {
		return nil, apierr.Forbidden("professor_required", fmt.Errorf("You don't have permission to upload materials to this course"))
	}
	course, err := s.courseRepo.GetByID(ctx, nil, input.CourseID)
	if err != nil {
		return nil, apierr.NotFound("course_not_found", fmt.Errorf("Course not found"))
	}
	if course.ProfessorID != input.RequesterID {
		return nil, apierr.Forbidden("not_course_owner", fmt.Errorf("You don't have permission to upload materials to this course"))
	}

	if input.Content == nil {
		return nil, apierr.Validation("missing_file", fmt.Errorf("No file provided"))
	}

	data, err := io.ReadAll(input.Content)
	if err != nil {
		return nil, apierr.Upstream("read_file_failed", err)
	}

	filePath := buildObjectKey(input.CourseID, input.MaterialType, input.FileName)
	if err := s.bucket.UploadFile(ctx, filePath, bytes.NewReader(data)); err != nil {
		return nil, apierr.Upstream("storage_upload_failed", err)
	}

	material := &types.Material{
		CourseID:     input.CourseID,
		Title:        input.Title,
		Description:  input.Description,
		FileName:     input.FileName,
		FilePath:     filePath,
		FileType:     input.FileType,
		FileSize:     input.FileSize,
		MaterialType: input.MaterialType,
		Processed:    false,
		ChunksCount:  0,
	}
	if _, err := s.materialRepo.Create(ctx, nil, material); err != nil {
		return nil, apierr.Upstream("create_material_failed", err)
	}

	title := input.Title
	if title == "" {
		title = input.FileName
	}
	count, err := s.embedChunks(ctx, material.ID, string(data), types.ChunkMetadata{
		Title:      title,
		Type:       input.MaterialType,
		CourseID:   input.CourseID.String(),
		MaterialID: material.ID.String(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.materialRepo.MarkProcessed(ctx, nil, material.ID, count); err != nil {
		return nil, apierr.Upstream("update_material_failed", err)
	}

	return &IngestResult{MaterialID: material.ID, ChunksProcessed: count}, nil
}

// ProcessDocument re-runs chunking and embedding for an object already in
// storage, e.g. after a direct upload through the storage endpoints.
func (s *materialService) ProcessDocument(ctx context.Context, filePath string, meta types.ChunkMetadata) (int, error) {
	if strings.TrimSpace(filePath) == "" {
		return 0, apierr.Validation("missing_file_path", fmt.Errorf("File path is required"))
	}

	data, err := s.bucket.Download(ctx, filePath)
	if err != nil {
		return 0, apierr.Upstream("storage_download_failed", err)
	}

	material, err := s.materialRepo.GetByFilePath(ctx, nil, filePath)
	if err != nil {
		return 0, apierr.NotFound("material_not_found", fmt.Errorf("No material found for file path"))
	}

	if meta.CourseID == "" {
		meta.CourseID = material.CourseID.String()
	}
	if meta.MaterialID == "" {
		meta.MaterialID = material.ID.String()
	}
	if meta.Title == "" {
		meta.Title = material.Title
	}
	if meta.Type == "" {
		meta.Type = material.MaterialType
	}

	count, err := s.embedChunks(ctx, material.ID, string(data), meta)
	if err != nil {
		return 0, err
	}

	if err := s.materialRepo.MarkProcessed(ctx, nil, material.ID, count); err != nil {
		return 0, apierr.Upstream("update_material_failed", err)
	}

	return count, nil
}

// embedChunks splits the text, embeds every chunk in one blocking pass,
// and upserts rows keyed by material id and chunk index.
func (s *materialService) embedChunks(ctx context.Context, materialID uuid.UUID, text string, meta types.ChunkMetadata) (int, error) {
	chunks := chunker.Split(text)
	rows := make([]*types.Embedding, 0, len(chunks))

	for i, chunk := range chunks {
		vec, err := s.ai.Embed(ctx, chunk)
		if err != nil {
			return 0, apierr.Upstream("embedding_failed", err)
		}

		chunkMeta := meta
		chunkMeta.ChunkIndex = i
		chunkMeta.TotalChunks = len(chunks)
		metaJSON, err := json.Marshal(chunkMeta)
		if err != nil {
			return 0, apierr.Upstream("metadata_encode_failed", err)
		}

		rows = append(rows, &types.Embedding{
			ID:        ChunkID(materialID, i),
			Content:   chunk,
			Embedding: pgvector.NewVector(vec),
			Metadata:  metaJSON,
		})
	}

	if err := s.embeddingRepo.Upsert(ctx, nil, rows); err != nil {
		return 0, apierr.Upstream("embedding_store_failed", err)
	}

	return len(rows), nil
}

// ChunkID derives the deterministic embedding row id for one chunk.
func ChunkID(materialID uuid.UUID, index int) string {
	return fmt.Sprintf("%s-chunk-%d", materialID, index)
}

func buildObjectKey(courseID uuid.UUID, materialType string, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%s/%s/%d_%s%s", courseID, materialType, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
