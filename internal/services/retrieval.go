package services

import (
	"context"
	"strings"

	"github.com/campushq/course-assistant-backend/internal/clients/openai"
	"github.com/campushq/course-assistant-backend/internal/platform/apierr"
	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/repos"
	"github.com/campushq/course-assistant-backend/internal/types"
)

const (
	// MatchThreshold is the minimum cosine similarity for a stored chunk
	// to count as a relevant match.
	MatchThreshold = 0.5

	DefaultSearchLimit = 5
	ChatSearchLimit    = 3
)

// RetrievalService turns a query into ranked chunks scoped to one course.
type RetrievalService interface {
	Search(ctx context.Context, query string, courseID string, limit int) ([]types.SearchResult, error)
}

type retrievalService struct {
	log           *logger.Logger
	ai            openai.Client
	embeddingRepo repos.EmbeddingRepo
}

func NewRetrievalService(log *logger.Logger, ai openai.Client, embeddingRepo repos.EmbeddingRepo) RetrievalService {
	return &retrievalService{
		log:           log.With("service", "RetrievalService"),
		ai:            ai,
		embeddingRepo: embeddingRepo,
	}
}

func (s *retrievalService) Search(ctx context.Context, query string, courseID string, limit int) ([]types.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apierr.Validation("missing_query", errQueryRequired)
	}
	if strings.TrimSpace(courseID) == "" {
		return nil, apierr.Validation("missing_course_id", errCourseIDRequired)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	queryEmbedding, err := s.ai.Embed(ctx, query)
	if err != nil {
		return nil, apierr.Upstream("embedding_failed", err)
	}

	results, err := s.embeddingRepo.MatchDocuments(ctx, queryEmbedding, MatchThreshold, limit, courseID)
	if err != nil {
		return nil, apierr.Upstream("similarity_query_failed", err)
	}

	return results, nil
}
