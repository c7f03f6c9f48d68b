package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/requestdata"
	"github.com/campushq/course-assistant-backend/internal/services"
)

type StudentHandler struct {
	log            *logger.Logger
	studentService services.StudentService
}

func NewStudentHandler(log *logger.Logger, studentService services.StudentService) *StudentHandler {
	return &StudentHandler{
		log:            log.With("handler", "StudentHandler"),
		studentService: studentService,
	}
}

// requesterID resolves the acting student from the user_id query parameter,
// falling back to the bearer identity when the parameter is absent.
func requesterID(c *gin.Context) (uuid.UUID, error) {
	raw := c.Query("user_id")
	if raw == "" {
		if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
			raw = rd.UserID
		}
	}
	if raw == "" {
		return uuid.Nil, fmt.Errorf("User ID is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("User ID is not a valid id")
	}
	return id, nil
}

func (h *StudentHandler) CourseMaterials(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_user_id", err)
		return
	}
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", fmt.Errorf("Course ID is not a valid id"))
		return
	}

	materials, err := h.studentService.CourseMaterials(c.Request.Context(), userID, courseID)
	if err != nil {
		h.log.Error("CourseMaterials failed", "error", err, "course_id", courseID)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"materials": materials})
}

func (h *StudentHandler) EnrolledCourses(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_user_id", err)
		return
	}

	courses, err := h.studentService.EnrolledCourses(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("EnrolledCourses failed", "error", err)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"courses": courses})
}

func (h *StudentHandler) RecentQueries(c *gin.Context) {
	userID, err := requesterID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_user_id", err)
		return
	}

	var courseID *uuid.UUID
	if raw := c.Query("course_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_course_id", fmt.Errorf("Course ID is not a valid id"))
			return
		}
		courseID = &id
	}

	queries, err := h.studentService.RecentQueries(c.Request.Context(), userID, courseID)
	if err != nil {
		h.log.Error("RecentQueries failed", "error", err)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"queries": queries})
}
