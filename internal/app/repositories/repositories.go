package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by delete/update operations whose target row does
// not exist. Lookup methods return (nil, nil) for a missing row instead, since
// "not found" is an ordinary result for reference resolution.
var ErrNotFound = errors.New("record not found")

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	PendingUserRepository *PendingUserRepository
	DepartmentRepository  *DepartmentRepository
	CourseRepository      *CourseRepository
	FacultyRepository     *FacultyRepository
	RoomRepository        *RoomRepository
	RoutineRepository     *RoutineRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		PendingUserRepository: NewPendingUserRepository(db),
		DepartmentRepository:  NewDepartmentRepository(db),
		CourseRepository:      NewCourseRepository(db),
		FacultyRepository:     NewFacultyRepository(db),
		RoomRepository:        NewRoomRepository(db),
		RoutineRepository:     NewRoutineRepository(db),
	}
}
