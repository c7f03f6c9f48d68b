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

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}
	userID, err := uuid.Parse(rd.UserID)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}

	role := c.DefaultQuery("role", services.RoleProfessor)

	var courses any
	if role == services.RoleProfessor {
		courses, err = h.courseService.ListForProfessor(c.Request.Context(), userID)
	} else {
		courses, err = h.courseService.ListForStudent(c.Request.Context(), userID)
	}
	if err != nil {
		h.log.Error("ListCourses failed", "error", err, "role", role)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"courses": courses})
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}
	userID, err := uuid.Parse(rd.UserID)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", fmt.Errorf("Course ID is not a valid id"))
		return
	}

	course, err := h.courseService.Get(c.Request.Context(), userID, rd.Role, courseID)
	if err != nil {
		h.log.Error("GetCourse failed", "error", err, "course_id", courseID)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"course": course})
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}
	userID, err := uuid.Parse(rd.UserID)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}

	var input services.CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("Invalid request body"))
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), userID, rd.Role, input)
	if err != nil {
		h.log.Error("CreateCourse failed", "error", err)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"course": course})
}

func (h *CourseHandler) ListEnrollments(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}
	userID, err := uuid.Parse(rd.UserID)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", fmt.Errorf("Course ID is not a valid id"))
		return
	}

	enrollments, err := h.courseService.ListEnrollments(c.Request.Context(), userID, rd.Role, courseID)
	if err != nil {
		h.log.Error("ListEnrollments failed", "error", err, "course_id", courseID)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"enrollments": enrollments})
}

type enrollRequest struct {
	StudentIDs []string `json:"student_ids"`
}

func (h *CourseHandler) EnrollStudents(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}
	userID, err := uuid.Parse(rd.UserID)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", fmt.Errorf("Course ID is not a valid id"))
		return
	}

	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("Invalid request body"))
		return
	}

	studentIDs := make([]uuid.UUID, 0, len(req.StudentIDs))
	for _, raw := range req.StudentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_student_id", fmt.Errorf("Student ID %q is not a valid id", raw))
			return
		}
		studentIDs = append(studentIDs, id)
	}

	enrolled, err := h.courseService.EnrollStudents(c.Request.Context(), userID, rd.Role, courseID, studentIDs)
	if err != nil {
		h.log.Error("EnrollStudents failed", "error", err, "course_id", courseID)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"enrolled": enrolled})
}
