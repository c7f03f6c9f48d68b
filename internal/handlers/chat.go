package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/requestdata"
	"github.com/campushq/course-assistant-backend/internal/services"
)

type ChatHandler struct {
	log  *logger.Logger
	chat services.ChatService
}

func NewChatHandler(log *logger.Logger, chat services.ChatService) *ChatHandler {
	return &ChatHandler{
		log:  log.With("handler", "ChatHandler"),
		chat: chat,
	}
}

type chatRequest struct {
	Query    string `json:"query"`
	CourseID string `json:"course_id"`
	UserID   string `json:"user_id"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
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

	userID := req.UserID
	if userID == "" {
		if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
			userID = rd.UserID
		}
	}
	if strings.TrimSpace(userID) == "" {
		RespondError(c, http.StatusBadRequest, "missing_user_id", fmt.Errorf("User ID is required"))
		return
	}

	answer, err := h.chat.Answer(c.Request.Context(), req.Query, req.CourseID, userID)
	if err != nil {
		h.log.Error("Chat failed", "error", err, "course_id", req.CourseID)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"response": answer.Response, "sources": answer.Sources})
}
