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

// ErrRoomNameExists is returned when a room with the same name already exists
// (name uniqueness is case-insensitive).
var ErrRoomNameExists = errors.New("room name already exists")

// RoomRepository handles room database operations
type RoomRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	sql, args, err := r.sb.Insert("rooms").
		Columns("name", "capacity", "type", "department_id").
		Values(room.Name, room.Capacity, string(room.Type), room.DepartmentID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create room query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&room.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrRoomNameExists
		}
		return fmt.Errorf("error creating room: %w", err)
	}
	return nil
}

// GetByID retrieves a room by ID. Returns (nil, nil) when absent.
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByName retrieves a room by exact name match. Returns (nil, nil) when absent.
func (r *RoomRepository) GetByName(ctx context.Context, name string) (*models.Room, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *RoomRepository) getOne(ctx context.Context, pred interface{}) (*models.Room, error) {
	sql, args, err := r.sb.Select("id", "name", "capacity", "type", "department_id").
		From("rooms").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get room query: %w", err)
	}

	room := &models.Room{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&room.ID, &room.Name, &room.Capacity, &room.Type, &room.DepartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning room row: %w", err)
	}
	return room, nil
}

// NameExists checks whether a room with the given name exists, ignoring case
func (r *RoomRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM rooms WHERE LOWER(name) = LOWER($1))`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking room existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves all rooms with departments expanded, sorted by name
func (r *RoomRepository) GetAll(ctx context.Context) ([]*models.Room, error) {
	sql, args, err := r.sb.Select(
		"r.id", "r.name", "r.capacity", "r.type", "r.department_id",
		"d.id", "d.code", "d.name", "d.description").
		From("rooms r").
		Join("departments d ON d.id = r.department_id").
		OrderBy("r.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all rooms query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	rooms := []*models.Room{}
	for rows.Next() {
		room := &models.Room{Department: &models.Department{}}
		if err := rows.Scan(
			&room.ID, &room.Name, &room.Capacity, &room.Type, &room.DepartmentID,
			&room.Department.ID, &room.Department.Code, &room.Department.Name, &room.Department.Description,
		); err != nil {
			return nil, fmt.Errorf("error scanning room row: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Delete deletes a room by ID
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("rooms").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete room query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting room: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
