package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campushq/course-assistant-backend/internal/clients/openai"
	"github.com/campushq/course-assistant-backend/internal/platform/apierr"
	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/repos"
	"github.com/campushq/course-assistant-backend/internal/types"
)

const (
	defaultSourceTitle = "Course Material"
	defaultSourceType  = "Document"

	excerptLimit = 150
)

const systemPromptTemplate = `You are an AI course assistant helping a student with their questions.
Use ONLY the following context from the course materials to answer the student's question.
If the information is not in the context, say that you don't have that information in the course materials.
Do not make up information or use external knowledge.

Context from course materials:
%s

Answer in a helpful, educational tone. Format your response using Markdown for better readability.
Include citations to the specific materials you referenced in your answer.`

// ChatService grounds a chat completion in retrieved course material and
// appends the exchange to the student's query history.
type ChatService interface {
	Answer(ctx context.Context, query string, courseID string, userID string) (*types.ChatAnswer, error)
}

type chatService struct {
	db        *gorm.DB
	log       *logger.Logger
	retrieval RetrievalService
	ai        openai.Client
	queryRepo repos.StudentQueryRepo
}

func NewChatService(db *gorm.DB, log *logger.Logger, retrieval RetrievalService, ai openai.Client, queryRepo repos.StudentQueryRepo) ChatService {
	return &chatService{
		db:        db,
		log:       log.With("service", "ChatService"),
		retrieval: retrieval,
		ai:        ai,
		queryRepo: queryRepo,
	}
}

func (s *chatService) Answer(ctx context.Context, query string, courseID string, userID string) (*types.ChatAnswer, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apierr.Validation("missing_user_id", errUserIDRequired)
	}
	studentID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apierr.Validation("invalid_user_id", fmt.Errorf("User ID is not a valid id"))
	}
	courseUUID, err := uuid.Parse(courseID)
	if err != nil {
		return nil, apierr.Validation("invalid_course_id", fmt.Errorf("Course ID is not a valid id"))
	}

	results, err := s.retrieval.Search(ctx, query, courseID, ChatSearchLimit)
	if err != nil {
		return nil, err
	}

	contextBlock, sources := assembleContext(results)

	answer, err := s.ai.Complete(ctx, fmt.Sprintf(systemPromptTemplate, contextBlock), query)
	if err != nil {
		return nil, apierr.Upstream("completion_failed", err)
	}

	row := &types.StudentQuery{
		StudentID: studentID,
		CourseID:  courseUUID,
		Query:     query,
		Response:  answer,
	}
	if _, err := s.queryRepo.Create(ctx, nil, row); err != nil {
		return nil, apierr.Upstream("history_write_failed", err)
	}

	return &types.ChatAnswer{Response: answer, Sources: sources}, nil
}

// assembleContext concatenates retrieved chunks into the grounding block
// handed to the model and produces the citation list returned to the
// client, in retrieval order.
func assembleContext(results []types.SearchResult) (string, []types.Source) {
	var sb strings.Builder
	sources := make([]types.Source, 0, len(results))

	for _, result := range results {
		meta := parseChunkMetadata(result.Metadata)
		title := meta.Title
		if title == "" {
			title = defaultSourceTitle
		}
		materialType := meta.Type
		if materialType == "" {
			materialType = defaultSourceType
		}

		sb.WriteString(fmt.Sprintf("Content: %s\n", result.Content))
		sb.WriteString(fmt.Sprintf("Source: %s, Type: %s\n\n", title, materialType))

		sources = append(sources, types.Source{
			Title:   title,
			Type:    materialType,
			Excerpt: excerpt(result.Content),
		})
	}

	return sb.String(), sources
}

func parseChunkMetadata(raw []byte) types.ChunkMetadata {
	var meta types.ChunkMetadata
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &meta)
	}
	return meta
}

func excerpt(content string) string {
	if len(content) > excerptLimit {
		return content[:excerptLimit] + "..."
	}
	return content
}
