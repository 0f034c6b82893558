package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rahuldey/uniroutine/internal/app/models"
	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/app/repositories"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
)

// CourseService handles course CRUD
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	departmentRepo *repositories.DepartmentRepository
	routineRepo    *repositories.RoutineRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	departmentRepo *repositories.DepartmentRepository,
	routineRepo *repositories.RoutineRepository,
) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
		routineRepo:    routineRepo,
	}
}

// Create creates a new course. The name must be unique ignoring case; the
// owning department may be given as a code or a numeric id.
func (s *CourseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Department) == "" {
		return nil, apperrors.NewValidationError("Course name and department are required")
	}

	exists, err := s.courseRepo.NameExists(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("Course already exists")
	}

	department, err := resolveDepartmentValue(ctx, s.departmentRepo, req.Department)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, apperrors.NewValidationError("Invalid department code or ID")
	}

	course := &models.Course{
		Name:         req.Name,
		DepartmentID: department.ID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrCourseNameExists) {
			return nil, apperrors.NewConflictError("Course already exists")
		}
		return nil, err
	}
	course.Department = department
	return course, nil
}

// GetAll retrieves all courses with departments expanded
func (s *CourseService) GetAll(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// Delete deletes a course by id. Courses referenced by routine entries cannot
// be deleted.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	referenced, err := s.routineRepo.ReferencesEntity(ctx, "course_id", id)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.NewConflictError("Course is referenced by existing routines and cannot be deleted")
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Course not found")
		}
		return err
	}
	return nil
}
