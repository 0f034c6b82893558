package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/app/services"
	"github.com/rahuldey/uniroutine/internal/middleware"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
)

// FacultyController handles faculty endpoints
type FacultyController struct {
	facultyService *services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService *services.FacultyService) *FacultyController {
	return &FacultyController{facultyService: facultyService}
}

// AddFaculty adds a faculty member
// @Summary Add a faculty member
// @Tags faculties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFacultyRequest true "Faculty member"
// @Success 201 {object} dto.APIResponse{data=models.Faculty} "Faculty added successfully"
// @Failure 400 {object} dto.APIResponse "Missing fields or duplicate email"
// @Router /faculties [post]
func (c *FacultyController) AddFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(
			bindingMessage(err, services.MsgAllFieldsRequired, map[string]string{
				"email": "A valid email address is required",
			})))
		return
	}

	faculty, err := c.facultyService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(http.StatusCreated, faculty, "Faculty added successfully"))
}

// GetFaculties lists all faculty members sorted by name
// @Summary List faculty members
// @Tags faculties
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty} "Faculties fetched successfully"
// @Router /faculties [get]
func (c *FacultyController) GetFaculties(ctx *gin.Context) {
	faculties, err := c.facultyService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, faculties, "Faculties fetched successfully"))
}

// DeleteFaculty removes a faculty member by id
// @Summary Delete a faculty member
// @Tags faculties
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty ID"
// @Success 200 {object} dto.APIResponse "Faculty deleted successfully"
// @Failure 404 {object} dto.APIResponse "Faculty not found"
// @Router /faculties/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.facultyService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "Faculty deleted successfully"))
}
