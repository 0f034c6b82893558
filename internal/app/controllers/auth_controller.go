package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/app/services"
	"github.com/rahuldey/uniroutine/internal/middleware"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
	"github.com/rahuldey/uniroutine/internal/pkg/auth"
)

// AuthController handles registration, login and password reset endpoints
type AuthController struct {
	authService *services.AuthService
	jwtService  *auth.JWTService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, jwtService *auth.JWTService) *AuthController {
	return &AuthController{authService: authService, jwtService: jwtService}
}

// Register starts a registration and mails an OTP
// @Summary Register a new account
// @Description Stores a pending registration and emails a verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration"
// @Success 200 {object} dto.APIResponse "OTP sent to your email"
// @Failure 400 {object} dto.APIResponse "Missing fields or existing account"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(
			bindingMessage(err, services.MsgAllFieldsRequired, map[string]string{
				"email": "A valid email address is required",
				"min":   "Password must be at least 6 characters",
			})))
		return
	}

	if err := c.authService.Register(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, gin.H{"email": req.Email}, "OTP sent to your email"))
}

// VerifyOTP completes a registration and signs the user in
// @Summary Verify the registration OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and OTP"
// @Success 200 {object} dto.APIResponse{data=models.User} "User registered successfully"
// @Failure 400 {object} dto.APIResponse "Invalid or expired OTP"
// @Failure 404 {object} dto.APIResponse "No pending registration"
// @Router /auth/verify-otp [post]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Email and OTP are required"))
		return
	}

	user, token, err := c.authService.VerifyOTP(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setAccessTokenCookie(ctx, token)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, user, "User registered successfully"))
}

// ResendOTP re-issues the registration OTP
// @Summary Resend the registration OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResendOTPRequest true "Email"
// @Success 200 {object} dto.APIResponse "OTP sent to your email"
// @Failure 404 {object} dto.APIResponse "No pending registration"
// @Router /auth/resend-otp [post]
func (c *AuthController) ResendOTP(ctx *gin.Context) {
	var req dto.ResendOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Email is required"))
		return
	}

	if err := c.authService.ResendOTP(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "OTP sent to your email"))
}

// Login authenticates an account and sets the access token cookie
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=models.User} "Login successful"
// @Failure 401 {object} dto.APIResponse "Invalid email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Email and password are required"))
		return
	}

	user, token, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setAccessTokenCookie(ctx, token)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, user, "Login successful"))
}

// Logout clears the access token cookie
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse "Logged out successfully"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "Logged out successfully"))
}

// GetCurrentUser returns the authenticated user's profile
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.User} "User fetched successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) GetCurrentUser(ctx *gin.Context) {
	userID, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	user, err := c.authService.GetCurrentUser(ctx.Request.Context(), userID.(int64))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, user, "User fetched successfully"))
}

// ForgotPassword mails a password reset OTP
// @Summary Request a password reset OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email"
// @Success 200 {object} dto.APIResponse "OTP sent to your email"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Email is required"))
		return
	}

	if err := c.authService.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "OTP sent to your email"))
}

// VerifyForgotPasswordOTP checks a reset OTP before the new password is chosen
// @Summary Verify the password reset OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and OTP"
// @Success 200 {object} dto.APIResponse "OTP verified"
// @Failure 400 {object} dto.APIResponse "Invalid or expired OTP"
// @Router /auth/verify-forgot-password-otp [post]
func (c *AuthController) VerifyForgotPasswordOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Email and OTP are required"))
		return
	}

	if err := c.authService.VerifyResetOTP(ctx.Request.Context(), req.Email, req.OTP); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "OTP verified"))
}

// ResetPassword sets a new password after the reset OTP was verified
// @Summary Reset the password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Email, OTP and new password"
// @Success 200 {object} dto.APIResponse "Password reset successfully"
// @Failure 400 {object} dto.APIResponse "Invalid or expired OTP"
// @Router /auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(
			bindingMessage(err, services.MsgAllFieldsRequired, map[string]string{
				"min": "Password must be at least 6 characters",
			})))
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "Password reset successfully"))
}

// GetUsers lists all accounts
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Users fetched successfully"
// @Router /users [get]
func (c *AuthController) GetUsers(ctx *gin.Context) {
	users, err := c.authService.GetUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, users, "Users fetched successfully"))
}

// DeleteUser removes an account by id
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "User deleted successfully"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /users/{id} [delete]
func (c *AuthController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.authService.DeleteUser(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "User deleted successfully"))
}

func (c *AuthController) setAccessTokenCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.AccessTokenCookie, token,
		int(c.jwtService.AccessTokenExpiry().Seconds()), "/", "", false, true)
}
