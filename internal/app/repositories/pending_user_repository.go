package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahuldey/uniroutine/internal/app/models"
)

// PendingUserRepository handles registrations awaiting OTP verification
type PendingUserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPendingUserRepository creates a new PendingUserRepository
func NewPendingUserRepository(db *pgxpool.Pool) *PendingUserRepository {
	return &PendingUserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Replace removes any existing pending registration for the email and inserts
// a fresh one. Re-registering restarts the OTP window.
func (r *PendingUserRepository) Replace(ctx context.Context, pending *models.PendingUser) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM pending_users WHERE LOWER(email) = LOWER($1)`, pending.Email); err != nil {
		return fmt.Errorf("error clearing pending registration: %w", err)
	}

	sql, args, err := r.sb.Insert("pending_users").
		Columns("name", "email", "password", "otp_hash", "otp_expiry").
		Values(pending.Name, pending.Email, pending.Password, pending.OTPHash, pending.OTPExpiry).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create pending user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&pending.ID, &pending.CreatedAt); err != nil {
		return fmt.Errorf("error creating pending registration: %w", err)
	}
	return nil
}

// GetByEmail retrieves a pending registration by email, ignoring case.
// Returns (nil, nil) when absent.
func (r *PendingUserRepository) GetByEmail(ctx context.Context, email string) (*models.PendingUser, error) {
	sql, args, err := r.sb.Select("id", "name", "email", "password", "otp_hash", "otp_expiry", "created_at").
		From("pending_users").
		Where(squirrel.Expr("LOWER(email) = LOWER(?)", email)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get pending user query: %w", err)
	}

	pending := &models.PendingUser{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&pending.ID, &pending.Name, &pending.Email, &pending.Password,
		&pending.OTPHash, &pending.OTPExpiry, &pending.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning pending user row: %w", err)
	}
	return pending, nil
}

// UpdateOTP replaces the OTP hash and expiry of a pending registration
func (r *PendingUserRepository) UpdateOTP(ctx context.Context, id int64, otpHash string, expiry time.Time) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE pending_users SET otp_hash = $1, otp_expiry = $2 WHERE id = $3`, otpHash, expiry, id)
	if err != nil {
		return fmt.Errorf("error updating pending registration OTP: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a pending registration once it is promoted or abandoned
func (r *PendingUserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM pending_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting pending registration: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
