package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushq/course-assistant-backend/internal/platform/apierr"
	"github.com/campushq/course-assistant-backend/internal/requestdata"
	"github.com/campushq/course-assistant-backend/internal/services"
	"github.com/campushq/course-assistant-backend/internal/types"
)

type fakeCourseService struct {
	professorCourses []*types.Course
	studentCourses   []*types.Course
	created          *types.Course
	createErr        error
	course           *types.Course
	getErr           error
	lastGetCourseID  uuid.UUID
	enrollments      []*types.Enrollment
	lastRole         string
	lastInput        services.CreateCourseInput
	lastStudentIDs   []uuid.UUID
}

func (f *fakeCourseService) ListForProfessor(ctx context.Context, professorID uuid.UUID) ([]*types.Course, error) {
	return f.professorCourses, nil
}

func (f *fakeCourseService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Course, error) {
	return f.studentCourses, nil
}

func (f *fakeCourseService) Get(ctx context.Context, requesterID uuid.UUID, role string, courseID uuid.UUID) (*types.Course, error) {
	f.lastRole = role
	f.lastGetCourseID = courseID
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.course, nil
}

func (f *fakeCourseService) Create(ctx context.Context, professorID uuid.UUID, role string, input services.CreateCourseInput) (*types.Course, error) {
	f.lastRole = role
	f.lastInput = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeCourseService) ListEnrollments(ctx context.Context, requesterID uuid.UUID, role string, courseID uuid.UUID) ([]*types.Enrollment, error) {
	return f.enrollments, nil
}

func (f *fakeCourseService) EnrollStudents(ctx context.Context, requesterID uuid.UUID, role string, courseID uuid.UUID, studentIDs []uuid.UUID) ([]*types.Enrollment, error) {
	f.lastStudentIDs = studentIDs
	return f.enrollments, nil
}

func courseRouter(svc services.CourseService, rd *requestdata.RequestData, t *testing.T) *gin.Engine {
	router := gin.New()
	if rd != nil {
		router.Use(withRequestData(rd))
	}
	handler := NewCourseHandler(testLogger(t), svc)
	router.GET("/api/courses", handler.ListCourses)
	router.POST("/api/courses", handler.CreateCourse)
	router.GET("/api/courses/:id", handler.GetCourse)
	router.GET("/api/courses/:id/enrollments", handler.ListEnrollments)
	router.POST("/api/courses/:id/enrollments", handler.EnrollStudents)
	return router
}

func TestCourseHandlerRequiresIdentity(t *testing.T) {
	router := courseRouter(&fakeCourseService{}, nil, t)

	for _, probe := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/courses"},
		{http.MethodPost, "/api/courses"},
		{http.MethodGet, "/api/courses/" + uuid.New().String()},
		{http.MethodGet, "/api/courses/" + uuid.New().String() + "/enrollments"},
		{http.MethodPost, "/api/courses/" + uuid.New().String() + "/enrollments"},
	} {
		rec := doJSON(t, router, probe.method, probe.path, gin.H{})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s status = %d, want 401", probe.method, probe.path, rec.Code)
		}
	}
}

func TestListCoursesByRole(t *testing.T) {
	svc := &fakeCourseService{
		professorCourses: []*types.Course{{ID: uuid.New(), Title: "Taught"}},
		studentCourses:   []*types.Course{{ID: uuid.New(), Title: "Enrolled A"}, {ID: uuid.New(), Title: "Enrolled B"}},
	}
	rd := &requestdata.RequestData{UserID: uuid.New().String(), Role: "professor"}
	router := courseRouter(svc, rd, t)

	t.Run("default_professor", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/courses", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		payload := decodeBody(t, rec)
		if courses, ok := payload["courses"].([]any); !ok || len(courses) != 1 {
			t.Fatalf("courses = %v", payload["courses"])
		}
	})

	t.Run("student_view", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/courses?role=student", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		payload := decodeBody(t, rec)
		if courses, ok := payload["courses"].([]any); !ok || len(courses) != 2 {
			t.Fatalf("courses = %v", payload["courses"])
		}
	})
}

func TestGetCourse(t *testing.T) {
	courseID := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc := &fakeCourseService{course: &types.Course{ID: courseID, Title: "Algorithms"}}
		rd := &requestdata.RequestData{UserID: uuid.New().String(), Role: "student"}
		router := courseRouter(svc, rd, t)

		rec := doJSON(t, router, http.MethodGet, "/api/courses/"+courseID.String(), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		payload := decodeBody(t, rec)
		course, ok := payload["course"].(map[string]any)
		if !ok || course["title"] != "Algorithms" {
			t.Fatalf("course = %v", payload["course"])
		}
		if svc.lastRole != "student" || svc.lastGetCourseID != courseID {
			t.Fatalf("service called with role %q course %s", svc.lastRole, svc.lastGetCourseID)
		}
	})

	t.Run("invalid_id", func(t *testing.T) {
		rd := &requestdata.RequestData{UserID: uuid.New().String(), Role: "student"}
		router := courseRouter(&fakeCourseService{}, rd, t)

		rec := doJSON(t, router, http.MethodGet, "/api/courses/nope", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if _, code := errorEnvelope(t, rec); code != "invalid_course_id" {
			t.Fatalf("code = %q", code)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := &fakeCourseService{getErr: apierr.Forbidden("not_enrolled", fmt.Errorf("You are not enrolled in this course"))}
		rd := &requestdata.RequestData{UserID: uuid.New().String(), Role: "student"}
		router := courseRouter(svc, rd, t)

		rec := doJSON(t, router, http.MethodGet, "/api/courses/"+courseID.String(), nil)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		message, code := errorEnvelope(t, rec)
		if code != "not_enrolled" || message != "You are not enrolled in this course" {
			t.Fatalf("envelope = %q / %q", message, code)
		}
	})
}

func TestCreateCourseForwardsRoleAndInput(t *testing.T) {
	svc := &fakeCourseService{created: &types.Course{ID: uuid.New(), Title: "Algorithms"}}
	rd := &requestdata.RequestData{UserID: uuid.New().String(), Role: "professor"}
	router := courseRouter(svc, rd, t)

	rec := doJSON(t, router, http.MethodPost, "/api/courses", gin.H{
		"title": "Algorithms", "code": "CS301", "term": "Fall 2026", "department": "CS",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.lastRole != "professor" || svc.lastInput.Title != "Algorithms" || svc.lastInput.Code != "CS301" {
		t.Fatalf("service called with role %q input %+v", svc.lastRole, svc.lastInput)
	}
}

func TestCreateCourseMapsServiceError(t *testing.T) {
	svc := &fakeCourseService{createErr: apierr.Forbidden("professor_required", fmt.Errorf("Only professors can create courses"))}
	rd := &requestdata.RequestData{UserID: uuid.New().String(), Role: "student"}
	router := courseRouter(svc, rd, t)

	rec := doJSON(t, router, http.MethodPost, "/api/courses", gin.H{"title": "x", "code": "y", "term": "z", "department": "w"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	message, code := errorEnvelope(t, rec)
	if code != "professor_required" || message != "Only professors can create courses" {
		t.Fatalf("envelope = %q / %q", message, code)
	}
}

func TestEnrollStudentsParsesIDs(t *testing.T) {
	svc := &fakeCourseService{}
	rd := &requestdata.RequestData{UserID: uuid.New().String(), Role: "professor"}
	router := courseRouter(svc, rd, t)
	courseID := uuid.New().String()

	t.Run("invalid_id", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/courses/"+courseID+"/enrollments", gin.H{
			"student_ids": []string{"not-a-uuid"},
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if _, code := errorEnvelope(t, rec); code != "invalid_student_id" {
			t.Fatalf("code = %q", code)
		}
	})

	t.Run("valid_ids", func(t *testing.T) {
		students := []string{uuid.New().String(), uuid.New().String()}
		rec := doJSON(t, router, http.MethodPost, "/api/courses/"+courseID+"/enrollments", gin.H{
			"student_ids": students,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if len(svc.lastStudentIDs) != 2 || svc.lastStudentIDs[0].String() != students[0] {
			t.Fatalf("parsed ids = %v", svc.lastStudentIDs)
		}
	})

	t.Run("invalid_course_id", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/courses/nope/enrollments", gin.H{
			"student_ids": []string{uuid.New().String()},
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}
