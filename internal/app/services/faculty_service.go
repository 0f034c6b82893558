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

// FacultyService handles faculty CRUD
type FacultyService struct {
	facultyRepo    *repositories.FacultyRepository
	departmentRepo *repositories.DepartmentRepository
	routineRepo    *repositories.RoutineRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(
	facultyRepo *repositories.FacultyRepository,
	departmentRepo *repositories.DepartmentRepository,
	routineRepo *repositories.RoutineRepository,
) *FacultyService {
	return &FacultyService{
		facultyRepo:    facultyRepo,
		departmentRepo: departmentRepo,
		routineRepo:    routineRepo,
	}
}

// Create adds a faculty member. The email is stored lower-cased and must be
// unique ignoring case; the department may be a code or a numeric id.
func (s *FacultyService) Create(ctx context.Context, req *dto.CreateFacultyRequest) (*models.Faculty, error) {
	if hasEmptyField(req.Name, req.Email, req.Designation, req.Contact, req.Department) {
		return nil, apperrors.NewValidationError("All fields are required")
	}

	exists, err := s.facultyRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("Faculty with this email already exists")
	}

	department, err := resolveDepartmentValue(ctx, s.departmentRepo, req.Department)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, apperrors.NewValidationError("Invalid department code or ID")
	}

	faculty := &models.Faculty{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Designation:  req.Designation,
		Contact:      req.Contact,
		DepartmentID: department.ID,
	}
	if err := s.facultyRepo.Create(ctx, faculty); err != nil {
		if errors.Is(err, repositories.ErrFacultyEmailExists) {
			return nil, apperrors.NewConflictError("Faculty with this email already exists")
		}
		return nil, err
	}
	faculty.Department = department
	return faculty, nil
}

// GetAll retrieves all faculty members sorted by name
func (s *FacultyService) GetAll(ctx context.Context) ([]*models.Faculty, error) {
	return s.facultyRepo.GetAll(ctx)
}

// Delete deletes a faculty member by id. Faculty referenced by routine
// entries cannot be deleted.
func (s *FacultyService) Delete(ctx context.Context, id int64) error {
	referenced, err := s.routineRepo.ReferencesEntity(ctx, "faculty_id", id)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.NewConflictError("Faculty is referenced by existing routines and cannot be deleted")
	}

	if err := s.facultyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Faculty not found")
		}
		return err
	}
	return nil
}
