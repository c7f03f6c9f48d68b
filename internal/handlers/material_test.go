package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushq/course-assistant-backend/internal/requestdata"
	"github.com/campushq/course-assistant-backend/internal/services"
	"github.com/campushq/course-assistant-backend/internal/types"
)

type fakeMaterialService struct {
	materials []*types.Material
	result    *services.IngestResult
	ingestErr error
	lastInput services.IngestInput
	lastBody  []byte
}

func (f *fakeMaterialService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*types.Material, error) {
	return f.materials, nil
}

func (f *fakeMaterialService) Ingest(ctx context.Context, input services.IngestInput) (*services.IngestResult, error) {
	f.lastInput = input
	if input.Content != nil {
		f.lastBody, _ = io.ReadAll(input.Content)
	}
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	return f.result, nil
}

func (f *fakeMaterialService) ProcessDocument(ctx context.Context, filePath string, meta types.ChunkMetadata) (int, error) {
	return 0, nil
}

func materialRouter(svc services.MaterialService, rd *requestdata.RequestData, t *testing.T) *gin.Engine {
	router := gin.New()
	if rd != nil {
		router.Use(withRequestData(rd))
	}
	handler := NewMaterialHandler(testLogger(t), svc)
	router.POST("/api/materials/process", handler.ProcessMaterial)
	return router
}

func uploadForm(t *testing.T, fields map[string]string, fileName, fileBody string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create file part: %v", err)
	}
	if _, err := part.Write([]byte(fileBody)); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestProcessMaterialRequiresIdentity(t *testing.T) {
	router := materialRouter(&fakeMaterialService{}, nil, t)

	body, contentType := uploadForm(t, map[string]string{"course_id": uuid.New().String()}, "notes.txt", "hello")
	req := httptest.NewRequest(http.MethodPost, "/api/materials/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestProcessMaterialForwardsRequester(t *testing.T) {
	requesterID := uuid.New()
	courseID := uuid.New()
	svc := &fakeMaterialService{result: &services.IngestResult{MaterialID: uuid.New(), ChunksProcessed: 2}}
	rd := &requestdata.RequestData{UserID: requesterID.String(), Role: "professor"}
	router := materialRouter(svc, rd, t)

	body, contentType := uploadForm(t, map[string]string{
		"course_id":     courseID.String(),
		"material_type": "Lecture Notes",
		"title":         "Week 1",
	}, "week1.txt", "lecture text")
	req := httptest.NewRequest(http.MethodPost, "/api/materials/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.lastInput.RequesterID != requesterID || svc.lastInput.RequesterRole != "professor" {
		t.Fatalf("requester = %s role %q", svc.lastInput.RequesterID, svc.lastInput.RequesterRole)
	}
	if svc.lastInput.CourseID != courseID || svc.lastInput.FileName != "week1.txt" {
		t.Fatalf("input = %+v", svc.lastInput)
	}
	if string(svc.lastBody) != "lecture text" {
		t.Fatalf("file body = %q", svc.lastBody)
	}
	payload := decodeBody(t, rec)
	if payload["chunks_processed"] != float64(2) {
		t.Fatalf("payload = %v", payload)
	}
}
