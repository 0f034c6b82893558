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
	"github.com/rahuldey/uniroutine/internal/pkg/logger"
)

// ErrDepartmentCodeExists is returned when a department with the same code
// already exists (code uniqueness is case-insensitive).
var ErrDepartmentCodeExists = errors.New("department code already exists")

// DepartmentRepository handles department database operations
type DepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	sql, args, err := r.sb.Insert("departments").
		Columns("code", "name", "description").
		Values(department.Code, department.Name, department.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create department query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&department.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDepartmentCodeExists
		}
		logger.Error().Err(err).Msg("Error executing create department query")
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by ID. Returns (nil, nil) when absent.
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	sql, args, err := r.sb.Select("id", "code", "name", "description").
		From("departments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	return r.scanOne(ctx, sql, args)
}

// GetByCode retrieves a department by code, matching case-insensitively.
// Returns (nil, nil) when absent.
func (r *DepartmentRepository) GetByCode(ctx context.Context, code string) (*models.Department, error) {
	sql, args, err := r.sb.Select("id", "code", "name", "description").
		From("departments").
		Where(squirrel.Expr("UPPER(code) = UPPER(?)", code)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department by code query: %w", err)
	}

	return r.scanOne(ctx, sql, args)
}

func (r *DepartmentRepository) scanOne(ctx context.Context, sql string, args []interface{}) (*models.Department, error) {
	department := &models.Department{}
	err := r.db.QueryRow(ctx, sql, args...).Scan(
		&department.ID, &department.Code, &department.Name, &department.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning department row: %w", err)
	}
	return department, nil
}

// GetAll retrieves all departments sorted by code
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	sql, args, err := r.sb.Select("id", "code", "name", "description").
		From("departments").
		OrderBy("code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying departments: %w", err)
	}
	defer rows.Close()

	departments := []*models.Department{}
	for rows.Next() {
		department := &models.Department{}
		if err := rows.Scan(&department.ID, &department.Code, &department.Name, &department.Description); err != nil {
			return nil, fmt.Errorf("error scanning department row: %w", err)
		}
		departments = append(departments, department)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}

// Delete deletes a department by ID
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("departments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete department query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
