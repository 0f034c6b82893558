package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rahuldey/uniroutine/internal/app/models"
	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/app/repositories"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
	"github.com/rahuldey/uniroutine/internal/pkg/auth"
	"github.com/rahuldey/uniroutine/internal/pkg/email"
)

const (
	otpLength = 6
	otpTTL    = 5 * time.Minute
)

// AuthService handles registration, OTP verification, login and password
// reset. Registrations are kept in a pending table until the emailed OTP is
// confirmed; only then is the account created.
type AuthService struct {
	userRepo    *repositories.UserRepository
	pendingRepo *repositories.PendingUserRepository
	jwtService  *auth.JWTService
	mailer      email.Service
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	pendingRepo *repositories.PendingUserRepository,
	jwtService *auth.JWTService,
	mailer email.Service,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		jwtService:  jwtService,
		mailer:      mailer,
		logger:      logger,
	}
}

// Register starts a registration. The account is not created yet; a pending
// record with a hashed OTP is stored and the code is mailed. Re-registering
// the same email before verification replaces the pending record and restarts
// the OTP window.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewConflictError("User already exists")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	otp, otpHash, err := s.newOTP()
	if err != nil {
		return err
	}

	pending := &models.PendingUser{
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Password:  passwordHash,
		OTPHash:   otpHash,
		OTPExpiry: time.Now().Add(otpTTL),
	}
	if err := s.pendingRepo.Replace(ctx, pending); err != nil {
		return err
	}

	if err := s.mailer.SendOTPEmail(pending.Email, otp); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	s.logger.Info().Str("email", pending.Email).Msg("Registration started, OTP sent")
	return nil
}

// VerifyOTP completes a pending registration. On success the pending record is
// promoted to a user and an access token is issued.
func (s *AuthService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*models.User, string, error) {
	pending, err := s.pendingRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if pending == nil {
		return nil, "", apperrors.NewNotFoundError("No pending registration found for this email")
	}

	if time.Now().After(pending.OTPExpiry) {
		return nil, "", &apperrors.CustomError{Err: apperrors.ErrOTPExpired, Message: "OTP has expired. Please request a new one"}
	}
	if !auth.CheckOTP(pending.OTPHash, req.OTP) {
		return nil, "", &apperrors.CustomError{Err: apperrors.ErrInvalidOTP, Message: "Invalid OTP"}
	}

	user := &models.User{
		Name:     pending.Name,
		Email:    pending.Email,
		Password: pending.Password,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == repositories.ErrUserEmailExists {
			return nil, "", apperrors.NewConflictError("User already exists")
		}
		return nil, "", err
	}

	if err := s.pendingRepo.Delete(ctx, pending.ID); err != nil {
		// The account exists; a leftover pending row is harmless.
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to clear pending registration")
	}

	token, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Int64("userId", user.ID).Str("email", user.Email).Msg("User registered")
	return user, token, nil
}

// ResendOTP re-issues the registration OTP for a pending registration
func (s *AuthService) ResendOTP(ctx context.Context, emailAddr string) error {
	pending, err := s.pendingRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if pending == nil {
		return apperrors.NewNotFoundError("No pending registration found for this email")
	}

	otp, otpHash, err := s.newOTP()
	if err != nil {
		return err
	}
	if err := s.pendingRepo.UpdateOTP(ctx, pending.ID, otpHash, time.Now().Add(otpTTL)); err != nil {
		return err
	}
	if err := s.mailer.SendOTPEmail(pending.Email, otp); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// Login authenticates a verified account and returns it with a fresh token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		return nil, "", &apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: "Invalid email or password"}
	}

	token, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Int64("userId", user.ID).Msg("User logged in")
	return user, token, nil
}

// GetCurrentUser loads the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &apperrors.CustomError{Err: apperrors.ErrUserNotFound, Message: "User not found"}
	}
	return user, nil
}

// ForgotPassword issues a reset OTP to a verified account
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return &apperrors.CustomError{Err: apperrors.ErrUserNotFound, Message: "User not found"}
	}

	otp, otpHash, err := s.newOTP()
	if err != nil {
		return err
	}
	if err := s.userRepo.SetOTP(ctx, user.ID, otpHash, time.Now().Add(otpTTL)); err != nil {
		return err
	}
	if err := s.mailer.SendOTPEmail(user.Email, otp); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// VerifyResetOTP checks a reset OTP without consuming it, so the client can
// show the new-password form only after the code is confirmed.
func (s *AuthService) VerifyResetOTP(ctx context.Context, emailAddr, otp string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return &apperrors.CustomError{Err: apperrors.ErrUserNotFound, Message: "User not found"}
	}
	return s.checkResetOTP(user, otp)
}

// ResetPassword sets a new password after re-verifying the reset OTP. The OTP
// slot is cleared together with the password update.
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return &apperrors.CustomError{Err: apperrors.ErrUserNotFound, Message: "User not found"}
	}
	if err := s.checkResetOTP(user, req.OTP); err != nil {
		return err
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	s.logger.Info().Int64("userId", user.ID).Msg("Password reset")
	return nil
}

// GetUsers lists all accounts (admin)
func (s *AuthService) GetUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// DeleteUser removes an account by id (admin)
func (s *AuthService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if err == repositories.ErrNotFound {
			return &apperrors.CustomError{Err: apperrors.ErrUserNotFound, Message: "User not found"}
		}
		return err
	}
	return nil
}

func (s *AuthService) checkResetOTP(user *models.User, otp string) error {
	if user.OTPHash == nil || user.OTPExpiry == nil {
		return &apperrors.CustomError{Err: apperrors.ErrInvalidOTP, Message: "Invalid OTP"}
	}
	if time.Now().After(*user.OTPExpiry) {
		return &apperrors.CustomError{Err: apperrors.ErrOTPExpired, Message: "OTP has expired. Please request a new one"}
	}
	if !auth.CheckOTP(*user.OTPHash, otp) {
		return &apperrors.CustomError{Err: apperrors.ErrInvalidOTP, Message: "Invalid OTP"}
	}
	return nil
}

func (s *AuthService) newOTP() (otp, otpHash string, err error) {
	otp, err = auth.GenerateOTP(otpLength)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	otpHash, err = auth.HashOTP(otp)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash OTP: %w", err)
	}
	return otp, otpHash, nil
}
