package services

import (
	"context"
	"errors"

	"github.com/rahuldey/uniroutine/internal/app/models"
	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/app/repositories"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
)

// RoomService handles room CRUD
type RoomService struct {
	roomRepo       *repositories.RoomRepository
	departmentRepo *repositories.DepartmentRepository
	routineRepo    *repositories.RoutineRepository
}

// NewRoomService creates a new room service instance
func NewRoomService(
	roomRepo *repositories.RoomRepository,
	departmentRepo *repositories.DepartmentRepository,
	routineRepo *repositories.RoutineRepository,
) *RoomService {
	return &RoomService{
		roomRepo:       roomRepo,
		departmentRepo: departmentRepo,
		routineRepo:    routineRepo,
	}
}

// Create adds a room. The name must be unique ignoring case, the capacity
// positive, and the type one of the known room kinds.
func (s *RoomService) Create(ctx context.Context, req *dto.CreateRoomRequest) (*models.Room, error) {
	if hasEmptyField(req.Name, req.Type, req.Department) || req.Capacity == 0 {
		return nil, apperrors.NewValidationError("All fields are required")
	}
	if req.Capacity < 0 {
		return nil, apperrors.NewValidationError("Room capacity must be a positive number")
	}
	if !models.IsValidRoomType(req.Type) {
		return nil, apperrors.NewValidationError("Room type must be Classroom, Lab or Seminar Hall")
	}

	exists, err := s.roomRepo.NameExists(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("Room already exists")
	}

	department, err := resolveDepartmentValue(ctx, s.departmentRepo, req.Department)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, apperrors.NewValidationError("Invalid department code or ID")
	}

	room := &models.Room{
		Name:         req.Name,
		Capacity:     req.Capacity,
		Type:         models.RoomType(req.Type),
		DepartmentID: department.ID,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, repositories.ErrRoomNameExists) {
			return nil, apperrors.NewConflictError("Room already exists")
		}
		return nil, err
	}
	room.Department = department
	return room, nil
}

// GetAll retrieves all rooms sorted by name
func (s *RoomService) GetAll(ctx context.Context) ([]*models.Room, error) {
	return s.roomRepo.GetAll(ctx)
}

// Delete deletes a room by id. Rooms referenced by routine entries cannot be
// deleted.
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	referenced, err := s.routineRepo.ReferencesEntity(ctx, "room_id", id)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.NewConflictError("Room is referenced by existing routines and cannot be deleted")
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Room not found")
		}
		return err
	}
	return nil
}
