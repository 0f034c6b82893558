package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahuldey/uniroutine/internal/app/models"
	"github.com/rahuldey/uniroutine/internal/pkg/dberrors"
)

// ErrSlotTaken is returned when the insert hits one of the (day, time, faculty)
// or (day, time, room) backstop indexes. The admission pipeline normally
// rejects such candidates before the insert; the constraint closes the window
// between its read and the write.
var ErrSlotTaken = errors.New("slot already taken")

const routineColumns = "id, course_id, department_id, semester, subject, faculty_id, room_id, day, time"

// RoutineRepository handles routine database operations
type RoutineRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRoutineRepository creates a new RoutineRepository
func NewRoutineRepository(db *pgxpool.Pool) *RoutineRepository {
	return &RoutineRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new routine entry
func (r *RoutineRepository) Create(ctx context.Context, routine *models.Routine) error {
	sql, args, err := r.sb.Insert("routines").
		Columns("course_id", "department_id", "semester", "subject", "faculty_id", "room_id", "day", "time").
		Values(routine.CourseID, routine.DepartmentID, routine.Semester, routine.Subject,
			routine.FacultyID, routine.RoomID, routine.Day, routine.Time).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create routine query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&routine.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("error creating routine: %w", err)
	}
	return nil
}

// FindConflict returns the first existing routine that shares day and time
// with the candidate and collides on at least one of faculty, room, course or
// department. Ordering is the storage order (ascending id), which makes the
// result deterministic. Returns (nil, nil) when the slot is free.
func (r *RoutineRepository) FindConflict(ctx context.Context, day, time string, courseID, departmentID, facultyID, roomID int64) (*models.Routine, error) {
	sql, args, err := r.sb.Select(routineColumns).
		From("routines").
		Where(squirrel.And{
			squirrel.Eq{"day": day},
			squirrel.Eq{"time": time},
			squirrel.Or{
				squirrel.Eq{"faculty_id": facultyID},
				squirrel.Eq{"room_id": roomID},
				squirrel.Eq{"course_id": courseID},
				squirrel.Eq{"department_id": departmentID},
			},
		}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find conflict query: %w", err)
	}

	return r.scanOne(ctx, sql, args)
}

// FindDuplicate returns an existing routine that matches the candidate on all
// eight fields, or (nil, nil).
func (r *RoutineRepository) FindDuplicate(ctx context.Context, routine *models.Routine) (*models.Routine, error) {
	sql, args, err := r.sb.Select(routineColumns).
		From("routines").
		Where(squirrel.Eq{
			"course_id":     routine.CourseID,
			"department_id": routine.DepartmentID,
			"semester":      routine.Semester,
			"subject":       routine.Subject,
			"faculty_id":    routine.FacultyID,
			"room_id":       routine.RoomID,
			"day":           routine.Day,
			"time":          routine.Time,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find duplicate query: %w", err)
	}

	return r.scanOne(ctx, sql, args)
}

func (r *RoutineRepository) scanOne(ctx context.Context, sql string, args []interface{}) (*models.Routine, error) {
	routine := &models.Routine{}
	err := r.db.QueryRow(ctx, sql, args...).Scan(
		&routine.ID, &routine.CourseID, &routine.DepartmentID, &routine.Semester, &routine.Subject,
		&routine.FacultyID, &routine.RoomID, &routine.Day, &routine.Time)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning routine row: %w", err)
	}
	return routine, nil
}

// GetByID retrieves a routine by ID with all references expanded.
// Returns (nil, nil) when absent.
func (r *RoutineRepository) GetByID(ctx context.Context, id int64) (*models.Routine, error) {
	sql, args, err := r.selectExpanded().
		Where(squirrel.Eq{"rt.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get routine query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying routine: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanExpandedRoutine(rows)
}

// GetAll retrieves all routines with references expanded, sorted by day and time
func (r *RoutineRepository) GetAll(ctx context.Context) ([]*models.Routine, error) {
	sql, args, err := r.selectExpanded().
		OrderBy("rt.day ASC", "rt.time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all routines query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying routines: %w", err)
	}
	defer rows.Close()

	routines := []*models.Routine{}
	for rows.Next() {
		routine, err := scanExpandedRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return routines, nil
}

func (r *RoutineRepository) selectExpanded() squirrel.SelectBuilder {
	return r.sb.Select(
		"rt.id", "rt.course_id", "rt.department_id", "rt.semester", "rt.subject",
		"rt.faculty_id", "rt.room_id", "rt.day", "rt.time",
		"c.name",
		"d.code", "d.name",
		"f.name", "f.email",
		"rm.name", "rm.type").
		From("routines rt").
		Join("courses c ON c.id = rt.course_id").
		Join("departments d ON d.id = rt.department_id").
		Join("faculties f ON f.id = rt.faculty_id").
		Join("rooms rm ON rm.id = rt.room_id")
}

func scanExpandedRoutine(rows pgx.Rows) (*models.Routine, error) {
	routine := &models.Routine{
		Course:     &models.Course{},
		Department: &models.Department{},
		Faculty:    &models.Faculty{},
		Room:       &models.Room{},
	}
	if err := rows.Scan(
		&routine.ID, &routine.CourseID, &routine.DepartmentID, &routine.Semester, &routine.Subject,
		&routine.FacultyID, &routine.RoomID, &routine.Day, &routine.Time,
		&routine.Course.Name,
		&routine.Department.Code, &routine.Department.Name,
		&routine.Faculty.Name, &routine.Faculty.Email,
		&routine.Room.Name, &routine.Room.Type,
	); err != nil {
		return nil, fmt.Errorf("error scanning routine row: %w", err)
	}
	routine.Course.ID = routine.CourseID
	routine.Department.ID = routine.DepartmentID
	routine.Faculty.ID = routine.FacultyID
	routine.Room.ID = routine.RoomID
	return routine, nil
}

// Delete deletes a routine by ID
func (r *RoutineRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("routines").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete routine query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting routine: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReferencesEntity checks whether any routine references the given entity.
// Used as a delete guard so entity removal cannot orphan schedule entries.
func (r *RoutineRepository) ReferencesEntity(ctx context.Context, column string, id int64) (bool, error) {
	switch column {
	case "course_id", "department_id", "faculty_id", "room_id":
	default:
		return false, fmt.Errorf("unsupported reference column: %s", column)
	}

	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM routines WHERE %s = $1)`, column)
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking routine references: %w", err)
	}
	return exists, nil
}
