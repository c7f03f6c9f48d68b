package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campushq/course-assistant-backend/internal/platform/apierr"
	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/repos"
	"github.com/campushq/course-assistant-backend/internal/types"
)

const RoleProfessor = "professor"

type CreateCourseInput struct {
	Title       string `json:"title"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Term        string `json:"term"`
	Department  string `json:"department"`
}

type CourseService interface {
	ListForProfessor(ctx context.Context, professorID uuid.UUID) ([]*types.Course, error)
	ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Course, error)
	Get(ctx context.Context, requesterID uuid.UUID, role string, courseID uuid.UUID) (*types.Course, error)
	Create(ctx context.Context, professorID uuid.UUID, role string, input CreateCourseInput) (*types.Course, error)
	ListEnrollments(ctx context.Context, requesterID uuid.UUID, role string, courseID uuid.UUID) ([]*types.Enrollment, error)
	EnrollStudents(ctx context.Context, requesterID uuid.UUID, role string, courseID uuid.UUID, studentIDs []uuid.UUID) ([]*types.Enrollment, error)
}

type courseService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	enrollmentRepo repos.EnrollmentRepo
}

func NewCourseService(db *gorm.DB, log *logger.Logger, courseRepo repos.CourseRepo, enrollmentRepo repos.EnrollmentRepo) CourseService {
	return &courseService{
		db:             db,
		log:            log.With("service", "CourseService"),
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (s *courseService) ListForProfessor(ctx context.Context, professorID uuid.UUID) ([]*types.Course, error) {
	courses, err := s.courseRepo.ListByProfessor(ctx, nil, professorID)
	if err != nil {
		return nil, apierr.Upstream("load_courses_failed", err)
	}
	return courses, nil
}

func (s *courseService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Course, error) {
	courses, err := s.courseRepo.ListByEnrollment(ctx, nil, studentID)
	if err != nil {
		return nil, apierr.Upstream("load_courses_failed", err)
	}
	return courses, nil
}

// Get returns one course, visible to its owning professor or to an
// enrolled student.
func (s *courseService) Get(ctx context.Context, requesterID uuid.UUID, role string, courseID uuid.UUID) (*types.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.NotFound("course_not_found", fmt.Errorf("Course not found"))
	}

	if role == RoleProfessor {
		if course.ProfessorID != requesterID {
			return nil, apierr.Forbidden("not_course_owner", fmt.Errorf("You don't have access to this course"))
		}
		return course, nil
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, nil, requesterID, courseID)
	if err != nil {
		return nil, apierr.Upstream("enrollment_check_failed", err)
	}
	if !enrolled {
		return nil, apierr.Forbidden("not_enrolled", fmt.Errorf("You are not enrolled in this course"))
	}
	return course, nil
}

func (s *courseService) Create(ctx context.Context, professorID uuid.UUID, role string, input CreateCourseInput) (*types.Course, error) {
	if role != RoleProfessor {
		return nil, apierr.Forbidden("professor_required", fmt.Errorf("Only professors can create courses"))
	}

	required := map[string]string{
		"title":      input.Title,
		"code":       input.Code,
		"term":       input.Term,
		"department": input.Department,
	}
	for _, field := range []string{"title", "code", "term", "department"} {
		if strings.TrimSpace(required[field]) == "" {
			return nil, apierr.Validation("missing_field", fmt.Errorf("Missing required field: %s", field))
		}
	}

	course := &types.Course{
		Title:       input.Title,
		Code:        input.Code,
		Description: input.Description,
		Term:        input.Term,
		Department:  input.Department,
		ProfessorID: professorID,
	}
	created, err := s.courseRepo.Create(ctx, nil, course)
	if err != nil {
		return nil, apierr.Upstream("create_course_failed", err)
	}
	return created, nil
}

func (s *courseService) ListEnrollments(ctx context.Context, requesterID uuid.UUID, role string, courseID uuid.UUID) ([]*types.Enrollment, error) {
	if err := s.requireOwnership(ctx, requesterID, role, courseID); err != nil {
		return nil, err
	}
	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, apierr.Upstream("load_enrollments_failed", err)
	}
	return enrollments, nil
}

func (s *courseService) EnrollStudents(ctx context.Context, requesterID uuid.UUID, role string, courseID uuid.UUID, studentIDs []uuid.UUID) ([]*types.Enrollment, error) {
	if err := s.requireOwnership(ctx, requesterID, role, courseID); err != nil {
		return nil, err
	}
	if len(studentIDs) == 0 {
		return nil, apierr.Validation("missing_student_ids", fmt.Errorf("At least one student id is required"))
	}

	enrollments := make([]*types.Enrollment, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		enrollments = append(enrollments, &types.Enrollment{
			StudentID: studentID,
			CourseID:  courseID,
		})
	}
	created, err := s.enrollmentRepo.Create(ctx, nil, enrollments)
	if err != nil {
		return nil, apierr.Upstream("enroll_failed", err)
	}
	return created, nil
}

// requireOwnership gates enrollment management to the professor who owns
// the course.
func (s *courseService) requireOwnership(ctx context.Context, requesterID uuid.UUID, role string, courseID uuid.UUID) error {
	if role != RoleProfessor {
		return apierr.Forbidden("professor_required", fmt.Errorf("You don't have permission to manage enrollments"))
	}
	course, err := s.courseRepo.GetByID(ctx, nil, courseID)
	if err != nil {
		return apierr.NotFound("course_not_found", fmt.Errorf("Course not found"))
	}
	if course.ProfessorID != requesterID {
		return apierr.Forbidden("not_course_owner", fmt.Errorf("You don't have permission to manage enrollments"))
	}
	return nil
}
