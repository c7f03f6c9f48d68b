package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campushq/course-assistant-backend/internal/platform/apierr"
	"github.com/campushq/course-assistant-backend/internal/types"
)

type fakeEnrollmentRepo struct {
	enrolled    bool
	existsErr   error
	created     []*types.Enrollment
	byCourse    []*types.Enrollment
	existsCalls int
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error) {
	f.created = append(f.created, enrollments...)
	return enrollments, nil
}

func (f *fakeEnrollmentRepo) Exists(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (bool, error) {
	f.existsCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.enrolled, nil
}

func (f *fakeEnrollmentRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Enrollment, error) {
	return f.byCourse, nil
}

type fakeMaterialRepo struct {
	materials      []*types.Material
	listCalls      int
	byFilePath     map[string]*types.Material
	processed      map[uuid.UUID]int
	createErr      error
	listErr        error
	markErr        error
	createdHistory []*types.Material
}

func (f *fakeMaterialRepo) Create(ctx context.Context, tx *gorm.DB, material *types.Material) (*types.Material, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if material.ID == uuid.Nil {
		material.ID = uuid.New()
	}
	f.createdHistory = append(f.createdHistory, material)
	return material, nil
}

func (f *fakeMaterialRepo) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Material, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.materials, nil
}

func (f *fakeMaterialRepo) GetByFilePath(ctx context.Context, tx *gorm.DB, filePath string) (*types.Material, error) {
	if material, ok := f.byFilePath[filePath]; ok {
		return material, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMaterialRepo) MarkProcessed(ctx context.Context, tx *gorm.DB, id uuid.UUID, chunksCount int) error {
	if f.markErr != nil {
		return f.markErr
	}
	if f.processed == nil {
		f.processed = map[uuid.UUID]int{}
	}
	f.processed[id] = chunksCount
	return nil
}

type fakeCourseRepo struct {
	courses   map[uuid.UUID]*types.Course
	byStudent []*types.Course
	byProf    []*types.Course
	created   []*types.Course
}

func (f *fakeCourseRepo) Create(ctx context.Context, tx *gorm.DB, course *types.Course) (*types.Course, error) {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	f.created = append(f.created, course)
	return course, nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Course, error) {
	if course, ok := f.courses[id]; ok {
		return course, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCourseRepo) ListByProfessor(ctx context.Context, tx *gorm.DB, professorID uuid.UUID) ([]*types.Course, error) {
	return f.byProf, nil
}

func (f *fakeCourseRepo) ListByEnrollment(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Course, error) {
	return f.byStudent, nil
}

func TestCourseMaterialsRequiresEnrollment(t *testing.T) {
	enrollmentRepo := &fakeEnrollmentRepo{enrolled: false}
	materialRepo := &fakeMaterialRepo{materials: []*types.Material{{Title: "hidden"}}}
	svc := NewStudentService(nil, testLogger(t), &fakeCourseRepo{}, enrollmentRepo, materialRepo, &fakeQueryRepo{})

	_, err := svc.CourseMaterials(context.Background(), uuid.New(), uuid.New())
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != 403 {
		t.Fatalf("err = %v, want 403", err)
	}
	if enrollmentRepo.existsCalls != 1 {
		t.Fatalf("enrollment checks = %d, want 1", enrollmentRepo.existsCalls)
	}
	// The gate runs first: the materials table is never queried.
	if materialRepo.listCalls != 0 {
		t.Fatalf("materials listed for a non-enrolled student")
	}
}

func TestCourseMaterialsWhenEnrolled(t *testing.T) {
	courseID := uuid.New()
	enrollmentRepo := &fakeEnrollmentRepo{enrolled: true}
	materialRepo := &fakeMaterialRepo{materials: []*types.Material{
		{ID: uuid.New(), CourseID: courseID, Title: "Syllabus"},
		{ID: uuid.New(), CourseID: courseID, Title: "Week 1 Notes"},
	}}
	svc := NewStudentService(nil, testLogger(t), &fakeCourseRepo{}, enrollmentRepo, materialRepo, &fakeQueryRepo{})

	materials, err := svc.CourseMaterials(context.Background(), uuid.New(), courseID)
	if err != nil {
		t.Fatalf("CourseMaterials: %v", err)
	}
	if len(materials) != 2 || materials[0].Title != "Syllabus" {
		t.Fatalf("materials = %+v", materials)
	}
}

func TestCourseMaterialsEnrollmentCheckError(t *testing.T) {
	enrollmentRepo := &fakeEnrollmentRepo{existsErr: errors.New("db down")}
	materialRepo := &fakeMaterialRepo{}
	svc := NewStudentService(nil, testLogger(t), &fakeCourseRepo{}, enrollmentRepo, materialRepo, &fakeQueryRepo{})

	_, err := svc.CourseMaterials(context.Background(), uuid.New(), uuid.New())
	if apiErr := apierr.From(err); apiErr == nil || apiErr.Status != 500 {
		t.Fatalf("err = %v, want 500", err)
	}
	if materialRepo.listCalls != 0 {
		t.Fatalf("materials listed despite failed enrollment check")
	}
}
