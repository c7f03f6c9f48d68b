package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/requestdata"
	"github.com/campushq/course-assistant-backend/internal/services"
	"github.com/campushq/course-assistant-backend/internal/types"
)

type MaterialHandler struct {
	log             *logger.Logger
	materialService services.MaterialService
}

func NewMaterialHandler(log *logger.Logger, materialService services.MaterialService) *MaterialHandler {
	return &MaterialHandler{
		log:             log.With("handler", "MaterialHandler"),
		materialService: materialService,
	}
}

func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	raw := c.Query("courseId")
	if raw == "" {
		RespondError(c, http.StatusBadRequest, "missing_course_id", fmt.Errorf("Course ID is required"))
		return
	}
	courseID, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", fmt.Errorf("Course ID is not a valid id"))
		return
	}

	materials, err := h.materialService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.log.Error("ListMaterials failed", "error", err, "course_id", courseID)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"materials": materials})
}

// ProcessMaterial accepts a multipart upload, stores the file, and runs
// chunking and embedding in the same request. Only the owning professor
// may upload.
func (h *MaterialHandler) ProcessMaterial(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}
	requesterID, err := uuid.Parse(rd.UserID)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", fmt.Errorf("No file provided"))
		return
	}
	rawCourseID := c.PostForm("course_id")
	if rawCourseID == "" {
		RespondError(c, http.StatusBadRequest, "missing_course_id", fmt.Errorf("Course ID is required"))
		return
	}
	courseID, err := uuid.Parse(rawCourseID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", fmt.Errorf("Course ID is not a valid id"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "read_file_failed", err)
		return
	}
	defer file.Close()

	result, err := h.materialService.Ingest(c.Request.Context(), services.IngestInput{
		RequesterID:   requesterID,
		RequesterRole: rd.Role,
		CourseID:      courseID,
		MaterialType:  c.PostForm("material_type"),
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		FileName:      fileHeader.Filename,
		FileType:      fileHeader.Header.Get("Content-Type"),
		FileSize:      fileHeader.Size,
		Content:       file,
	})
	if err != nil {
		h.log.Error("ProcessMaterial failed", "error", err, "course_id", courseID)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, result)
}

type processDocumentRequest struct {
	FilePath string              `json:"file_path"`
	Metadata types.ChunkMetadata `json:"metadata"`
}

// ProcessDocument re-embeds an object that already lives in storage.
func (h *MaterialHandler) ProcessDocument(c *gin.Context) {
	var req processDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("Invalid request body"))
		return
	}
	if req.FilePath == "" {
		RespondError(c, http.StatusBadRequest, "missing_file_path", fmt.Errorf("File path is required"))
		return
	}

	count, err := h.materialService.ProcessDocument(c.Request.Context(), req.FilePath, req.Metadata)
	if err != nil {
		h.log.Error("ProcessDocument failed", "error", err, "file_path", req.FilePath)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"success": true, "documents_processed": count})
}
