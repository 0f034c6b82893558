package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rahuldey/uniroutine/internal/app/models"
	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/app/repositories"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
)

// User-facing messages produced by the admission pipeline.
const (
	MsgAllFieldsRequired  = "All fields are required"
	MsgInvalidReference   = "Invalid course, department, faculty, or room reference"
	MsgInvalidDay         = "Day must be one of Monday to Saturday"
	MsgFacultyConflict    = "Faculty already assigned in this time slot."
	MsgRoomConflict       = "Room already assigned in this time slot."
	MsgCourseConflict     = "This course is already scheduled in this time slot."
	MsgDepartmentConflict = "This department already has another class at the same time."
	MsgGenericConflict    = "Schedule conflict detected."
	MsgDuplicateRoutine   = "This exact routine entry already exists."
	MsgRoutineNotFound    = "Routine not found"
)

// Ref is a loosely typed entity reference supplied by the client: either a
// numeric canonical id or a human-readable key (name, or code for
// departments). A numeric value is ambiguous since names may be numeric too
// (room "301"), so it keeps the key form as well and resolvers fall back to
// the key lookup when the id lookup misses.
type Ref struct {
	id  int64
	key string
}

// ParseRef classifies a reference value. A value that parses as a positive
// integer is tried as a canonical id first.
func ParseRef(value string) Ref {
	ref := Ref{key: value}
	if id, err := strconv.ParseInt(value, 10, 64); err == nil && id > 0 {
		ref.id = id
	}
	return ref
}

// ByID returns the canonical id and whether the reference carries one
func (r Ref) ByID() (int64, bool) {
	return r.id, r.id > 0
}

// Key returns the human-readable key of a non-id reference
func (r Ref) Key() string {
	return r.key
}

// Store interfaces the admission pipeline depends on. Lookups return
// (nil, nil) for a missing record; "not found" is a result here, not an error.

// CourseStore resolves and lists courses
type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByName(ctx context.Context, name string) (*models.Course, error)
}

// DepartmentStore resolves departments by id or code
type DepartmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetByCode(ctx context.Context, code string) (*models.Department, error)
}

// FacultyStore resolves faculty members
type FacultyStore interface {
	GetByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetByName(ctx context.Context, name string) (*models.Faculty, error)
}

// RoomStore resolves rooms
type RoomStore interface {
	GetByID(ctx context.Context, id int64) (*models.Room, error)
	GetByName(ctx context.Context, name string) (*models.Room, error)
}

// RoutineStore persists and queries routine entries
type RoutineStore interface {
	Create(ctx context.Context, routine *models.Routine) error
	FindConflict(ctx context.Context, day, time string, courseID, departmentID, facultyID, roomID int64) (*models.Routine, error)
	FindDuplicate(ctx context.Context, routine *models.Routine) (*models.Routine, error)
	GetByID(ctx context.Context, id int64) (*models.Routine, error)
	GetAll(ctx context.Context) ([]*models.Routine, error)
	Delete(ctx context.Context, id int64) error
}

// EventPublisher receives routine lifecycle events for the realtime feed
type EventPublisher interface {
	Publish(event string, routine *models.Routine)
}

// Routine lifecycle event names
const (
	EventRoutineCreated = "routine.created"
	EventRoutineDeleted = "routine.deleted"
)

// RoutineService validates and admits schedule entries. It is the only
// component with non-trivial business rules: reference resolution, conflict
// detection and duplicate detection run in that order, and the storage insert
// happens only after every check passed.
type RoutineService struct {
	courses     CourseStore
	departments DepartmentStore
	faculties   FacultyStore
	rooms       RoomStore
	routines    RoutineStore
	events      EventPublisher
	logger      zerolog.Logger
}

// NewRoutineService creates a new RoutineService. events may be nil.
func NewRoutineService(
	courses CourseStore,
	departments DepartmentStore,
	faculties FacultyStore,
	rooms RoomStore,
	routines RoutineStore,
	events EventPublisher,
	logger zerolog.Logger,
) *RoutineService {
	return &RoutineService{
		courses:     courses,
		departments: departments,
		faculties:   faculties,
		rooms:       rooms,
		routines:    routines,
		events:      events,
		logger:      logger,
	}
}

// conflictReasons is the fixed priority order for reporting a collision. When
// several axes collide at once the first matching entry wins; faculty beats
// room beats course beats department.
var conflictReasons = []struct {
	matches func(existing, candidate *models.Routine) bool
	reason  string
}{
	{func(e, c *models.Routine) bool { return e.FacultyID == c.FacultyID }, MsgFacultyConflict},
	{func(e, c *models.Routine) bool { return e.RoomID == c.RoomID }, MsgRoomConflict},
	{func(e, c *models.Routine) bool { return e.CourseID == c.CourseID }, MsgCourseConflict},
	{func(e, c *models.Routine) bool { return e.DepartmentID == c.DepartmentID }, MsgDepartmentConflict},
}

func conflictReason(existing, candidate *models.Routine) string {
	for _, cr := range conflictReasons {
		if cr.matches(existing, candidate) {
			return cr.reason
		}
	}
	return MsgGenericConflict
}

// Admit runs the admission pipeline for a candidate routine entry and returns
// the created entry with its references populated for display.
func (s *RoutineService) Admit(ctx context.Context, req *dto.AdmitRoutineRequest) (*models.Routine, error) {
	if hasEmptyField(req.Course, req.Department, req.Semester, req.Subject,
		req.Faculty, req.Room, req.Day, req.Time) {
		return nil, apperrors.NewValidationError(MsgAllFieldsRequired)
	}
	if !models.IsValidWeekday(req.Day) {
		return nil, apperrors.NewValidationError(MsgInvalidDay)
	}

	course, err := s.resolveCourse(ctx, ParseRef(req.Course))
	if err != nil {
		return nil, err
	}
	department, err := s.resolveDepartment(ctx, ParseRef(req.Department))
	if err != nil {
		return nil, err
	}
	faculty, err := s.resolveFaculty(ctx, ParseRef(req.Faculty))
	if err != nil {
		return nil, err
	}
	room, err := s.resolveRoom(ctx, ParseRef(req.Room))
	if err != nil {
		return nil, err
	}
	if course == nil || department == nil || faculty == nil || room == nil {
		return nil, apperrors.NewValidationError(MsgInvalidReference)
	}

	candidate := &models.Routine{
		CourseID:     course.ID,
		DepartmentID: department.ID,
		Semester:     req.Semester,
		Subject:      req.Subject,
		FacultyID:    faculty.ID,
		RoomID:       room.ID,
		Day:          req.Day,
		Time:         req.Time,
	}

	existing, err := s.routines.FindConflict(ctx, candidate.Day, candidate.Time,
		candidate.CourseID, candidate.DepartmentID, candidate.FacultyID, candidate.RoomID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError(conflictReason(existing, candidate))
	}

	// An exact duplicate also matches the conflict query, so normally it is
	// reported as a conflict before this check runs.
	duplicate, err := s.routines.FindDuplicate(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if duplicate != nil {
		return nil, apperrors.NewConflictError(MsgDuplicateRoutine)
	}

	if err := s.routines.Create(ctx, candidate); err != nil {
		// A concurrent admission can slip past the read above; the backstop
		// indexes on (day, time, faculty) and (day, time, room) report it here.
		if errors.Is(err, repositories.ErrSlotTaken) {
			return nil, apperrors.NewConflictError(MsgGenericConflict)
		}
		return nil, err
	}

	candidate.Course = course
	candidate.Department = department
	candidate.Faculty = faculty
	candidate.Room = room

	s.logger.Info().
		Int64("routineID", candidate.ID).
		Str("day", candidate.Day).
		Str("time", candidate.Time).
		Msg("Routine admitted")
	s.publish(EventRoutineCreated, candidate)

	return candidate, nil
}

// GetAll returns every routine entry sorted by day and time
func (s *RoutineService) GetAll(ctx context.Context) ([]*models.Routine, error) {
	return s.routines.GetAll(ctx)
}

// Delete removes a routine entry by id
func (s *RoutineService) Delete(ctx context.Context, id int64) error {
	routine, err := s.routines.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if routine == nil {
		return apperrors.NewNotFoundError(MsgRoutineNotFound)
	}

	if err := s.routines.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(MsgRoutineNotFound)
		}
		return err
	}

	s.publish(EventRoutineDeleted, routine)
	return nil
}

func (s *RoutineService) resolveCourse(ctx context.Context, ref Ref) (*models.Course, error) {
	if id, ok := ref.ByID(); ok {
		course, err := s.courses.GetByID(ctx, id)
		if err != nil || course != nil {
			return course, err
		}
	}
	return s.courses.GetByName(ctx, ref.Key())
}

// resolveDepartment matches codes case-insensitively; "cse" and "CSE" resolve
// to the same record.
func (s *RoutineService) resolveDepartment(ctx context.Context, ref Ref) (*models.Department, error) {
	if id, ok := ref.ByID(); ok {
		department, err := s.departments.GetByID(ctx, id)
		if err != nil || department != nil {
			return department, err
		}
	}
	return s.departments.GetByCode(ctx, strings.ToUpper(ref.Key()))
}

func (s *RoutineService) resolveFaculty(ctx context.Context, ref Ref) (*models.Faculty, error) {
	if id, ok := ref.ByID(); ok {
		faculty, err := s.faculties.GetByID(ctx, id)
		if err != nil || faculty != nil {
			return faculty, err
		}
	}
	return s.faculties.GetByName(ctx, ref.Key())
}

func (s *RoutineService) resolveRoom(ctx context.Context, ref Ref) (*models.Room, error) {
	if id, ok := ref.ByID(); ok {
		room, err := s.rooms.GetByID(ctx, id)
		if err != nil || room != nil {
			return room, err
		}
	}
	return s.rooms.GetByName(ctx, ref.Key())
}

func (s *RoutineService) publish(event string, routine *models.Routine) {
	if s.events != nil {
		s.events.Publish(event, routine)
	}
}

func hasEmptyField(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}
