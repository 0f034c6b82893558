package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rahuldey/uniroutine/internal/app/models"
	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/app/repositories"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
)

// DepartmentService handles department CRUD
type DepartmentService struct {
	departmentRepo *repositories.DepartmentRepository
	routineRepo    *repositories.RoutineRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository, routineRepo *repositories.RoutineRepository) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		routineRepo:    routineRepo,
	}
}

// Create creates a new department. The code is stored upper-cased and must be
// unique ignoring case.
func (s *DepartmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("Department code and name are required")
	}

	existing, err := s.departmentRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("Department code already exists")
	}

	department := &models.Department{
		Code: strings.ToUpper(req.Code),
		Name: req.Name,
	}
	if req.Description != "" {
		department.Description = &req.Description
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		if errors.Is(err, repositories.ErrDepartmentCodeExists) {
			return nil, apperrors.NewConflictError("Department code already exists")
		}
		return nil, err
	}
	return department, nil
}

// GetAll retrieves all departments sorted by code
func (s *DepartmentService) GetAll(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

// Delete deletes a department by id. Departments referenced by routine
// entries cannot be deleted.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	referenced, err := s.routineRepo.ReferencesEntity(ctx, "department_id", id)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.NewConflictError("Department is referenced by existing routines and cannot be deleted")
	}

	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Department not found")
		}
		return err
	}
	return nil
}

// resolveDepartmentValue resolves a department reference that is either a
// numeric id or a department code. Shared by the course, faculty and room
// services, which all accept either form. A numeric value is tried as an id
// first and falls back to a code lookup, since codes may be numeric too.
func resolveDepartmentValue(ctx context.Context, repo *repositories.DepartmentRepository, value string) (*models.Department, error) {
	if id, err := strconv.ParseInt(value, 10, 64); err == nil && id > 0 {
		department, err := repo.GetByID(ctx, id)
		if err != nil || department != nil {
			return department, err
		}
	}
	return repo.GetByCode(ctx, strings.ToUpper(value))
}
