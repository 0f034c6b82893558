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

// ErrFacultyEmailExists is returned when a faculty member with the same email
// already exists (email uniqueness is case-insensitive).
var ErrFacultyEmailExists = errors.New("faculty email already exists")

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new faculty member
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	sql, args, err := r.sb.Insert("faculties").
		Columns("name", "email", "designation", "contact", "department_id").
		Values(faculty.Name, faculty.Email, faculty.Designation, faculty.Contact, faculty.DepartmentID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create faculty query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&faculty.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrFacultyEmailExists
		}
		return fmt.Errorf("error creating faculty: %w", err)
	}
	return nil
}

// GetByID retrieves a faculty member by ID. Returns (nil, nil) when absent.
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByName retrieves a faculty member by exact name match.
// Returns (nil, nil) when absent.
func (r *FacultyRepository) GetByName(ctx context.Context, name string) (*models.Faculty, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *FacultyRepository) getOne(ctx context.Context, pred interface{}) (*models.Faculty, error) {
	sql, args, err := r.sb.Select("id", "name", "email", "designation", "contact", "department_id").
		From("faculties").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty := &models.Faculty{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&faculty.ID, &faculty.Name, &faculty.Email, &faculty.Designation, &faculty.Contact, &faculty.DepartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning faculty row: %w", err)
	}
	return faculty, nil
}

// EmailExists checks whether a faculty member with the given email exists,
// ignoring case
func (r *FacultyRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM faculties WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking faculty existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves all faculty members with departments expanded, sorted by name
func (r *FacultyRepository) GetAll(ctx context.Context) ([]*models.Faculty, error) {
	sql, args, err := r.sb.Select(
		"f.id", "f.name", "f.email", "f.designation", "f.contact", "f.department_id",
		"d.id", "d.code", "d.name", "d.description").
		From("faculties f").
		Join("departments d ON d.id = f.department_id").
		OrderBy("f.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all faculties query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties := []*models.Faculty{}
	for rows.Next() {
		faculty := &models.Faculty{Department: &models.Department{}}
		if err := rows.Scan(
			&faculty.ID, &faculty.Name, &faculty.Email, &faculty.Designation, &faculty.Contact, &faculty.DepartmentID,
			&faculty.Department.ID, &faculty.Department.Code, &faculty.Department.Name, &faculty.Department.Description,
		); err != nil {
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculties = append(faculties, faculty)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return faculties, nil
}

// Delete deletes a faculty member by ID
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("faculties").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
