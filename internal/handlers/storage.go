package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/services"
)

// StorageHandler passes object operations straight through to the hosted
// storage service.
type StorageHandler struct {
	log    *logger.Logger
	bucket services.BucketService
}

func NewStorageHandler(log *logger.Logger, bucket services.BucketService) *StorageHandler {
	return &StorageHandler{
		log:    log.With("handler", "StorageHandler"),
		bucket: bucket,
	}
}

func (h *StorageHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", fmt.Errorf("No file provided"))
		return
	}
	key := c.PostForm("path")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "missing_path", fmt.Errorf("Path is required"))
		return
	}

	// Spool the upload to disk so large files do not sit in memory; the
	// temp file is removed on every exit path.
	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "temp_file_failed", err)
		return
	}
	defer func() {
		tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if err := c.SaveUploadedFile(fileHeader, tmp.Name()); err != nil {
		RespondError(c, http.StatusInternalServerError, "save_upload_failed", err)
		return
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		RespondError(c, http.StatusInternalServerError, "save_upload_failed", err)
		return
	}

	if err := h.bucket.UploadFile(c.Request.Context(), key, tmp); err != nil {
		h.log.Error("Upload failed", "error", err, "key", key)
		RespondAPIError(c, err)
		return
	}

	RespondOK(c, gin.H{"success": true, "path": key})
}

func (h *StorageHandler) GetURL(c *gin.Context) {
	key := c.Query("path")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "missing_path", fmt.Errorf("Path is required"))
		return
	}
	RespondOK(c, gin.H{"url": h.bucket.GetPublicURL(key)})
}

func (h *StorageHandler) Delete(c *gin.Context) {
	key := c.Query("path")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "missing_path", fmt.Errorf("Path is required"))
		return
	}
	if err := h.bucket.DeleteFile(c.Request.Context(), key); err != nil {
		h.log.Error("Delete failed", "error", err, "key", key)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
