package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campushq/course-assistant-backend/internal/platform/apierr"
	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/repos"
	"github.com/campushq/course-assistant-backend/internal/types"
)

type StudentService interface {
	EnrolledCourses(ctx context.Context, studentID uuid.UUID) ([]*types.Course, error)
	RecentQueries(ctx context.Context, studentID uuid.UUID, courseID *uuid.UUID) ([]*types.StudentQuery, error)
	CourseMaterials(ctx context.Context, studentID uuid.UUID, courseID uuid.UUID) ([]*types.Material, error)
}

type studentService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	enrollmentRepo repos.EnrollmentRepo
	materialRepo   repos.MaterialRepo
	queryRepo      repos.StudentQueryRepo
}

func NewStudentService(db *gorm.DB, log *logger.Logger, courseRepo repos.CourseRepo, enrollmentRepo repos.EnrollmentRepo, materialRepo repos.MaterialRepo, queryRepo repos.StudentQueryRepo) StudentService {
	return &studentService{
		db:             db,
		log:            log.With("service", "StudentService"),
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		materialRepo:   materialRepo,
		queryRepo:      queryRepo,
	}
}

func (s *studentService) EnrolledCourses(ctx context.Context, studentID uuid.UUID) ([]*types.Course, error) {
	courses, err := s.courseRepo.ListByEnrollment(ctx, nil, studentID)
	if err != nil {
		return nil, apierr.Upstream("load_courses_failed", err)
	}
	return courses, nil
}

func (s *studentService) RecentQueries(ctx context.Context, studentID uuid.UUID, courseID *uuid.UUID) ([]*types.StudentQuery, error) {
	queries, err := s.queryRepo.ListRecent(ctx, nil, studentID, courseID)
	if err != nil {
		return nil, apierr.Upstream("load_queries_failed", err)
	}
	return queries, nil
}

// CourseMaterials checks enrollment before touching the materials table;
// a student who is not enrolled gets a forbidden error and no material
// query runs.
func (s *studentService) CourseMaterials(ctx context.Context, studentID uuid.UUID, courseID uuid.UUID) ([]*types.Material, error) {
	enrolled, err := s.enrollmentRepo.Exists(ctx, nil, studentID, courseID)
	if err != nil {
		return nil, apierr.Upstream("enrollment_check_failed", err)
	}
	if !enrolled {
		return nil, apierr.Forbidden("not_enrolled", fmt.Errorf("You are not enrolled in this course"))
	}

	materials, err := s.materialRepo.ListByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Upstream("load_materials_failed", err)
	}
	return materials, nil
}
