package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/services"
)

type SearchHandler struct {
	log       *logger.Logger
	retrieval services.RetrievalService
}

func NewSearchHandler(log *logger.Logger, retrieval services.RetrievalService) *SearchHandler {
	return &SearchHandler{
		log:       log.With("handler", "SearchHandler"),
		retrieval: retrieval,
	}
}

type searchRequest struct {
	Query    string `json:"query"`
	CourseID string `json:"course_id"`
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		RespondError(c, http.StatusBadRequest, "missing_query", fmt.Errorf("Query is required"))
		return
	}
	if strings.TrimSpace(req.CourseID) == "" {
		RespondError(c, http.StatusBadRequest, "missing_course_id", fmt.Errorf("Course ID is required"))
		return
	}

	results, err := h.retrieval.Search(c.Request.Context(), req.Query, req.CourseID, services.DefaultSearchLimit)
	if err != nil {
		h.log.Error("Search failed", "error", err, "course_id", req.CourseID)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"results": results})
}
