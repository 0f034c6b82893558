package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/rahuldey/uniroutine/internal/app/models"
	"github.com/rahuldey/uniroutine/internal/app/repositories"
	"github.com/rahuldey/uniroutine/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@uniroutine.local"
	defaultAdminPassword = "admin123"
)

// CreateDefaultData seeds the default admin account and a couple of
// departments. Every step is idempotent; a rerun changes nothing.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	departmentRepo := repositories.NewDepartmentRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = defaultAdminEmail
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = defaultAdminPassword
	}

	existing, err := userRepo.GetByEmail(ctx, adminEmail)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	} else if existing == nil {
		passwordHash, err := auth.HashPassword(adminPassword)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &models.User{
				Name:     "Administrator",
				Email:    adminEmail,
				Password: passwordHash,
				Role:     models.RoleAdmin,
			}
			if err := userRepo.Create(ctx, admin); err != nil &&
				!errors.Is(err, repositories.ErrUserEmailExists) {
				lgr.Error().Err(err).Msg("Error creating default admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("email", adminEmail).Msg("Default admin user created")
			}
		}
	}

	defaults := []*models.Department{
		{Code: "CSE", Name: "Computer Science and Engineering"},
		{Code: "EEE", Name: "Electrical and Electronic Engineering"},
	}
	for _, dept := range defaults {
		if err := departmentRepo.Create(ctx, dept); err != nil &&
			!errors.Is(err, repositories.ErrDepartmentCodeExists) {
			lgr.Error().Err(err).Str("code", dept.Code).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
