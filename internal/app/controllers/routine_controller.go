package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahuldey/uniroutine/internal/app/models"
	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/app/services"
	"github.com/rahuldey/uniroutine/internal/middleware"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
)

// RoutineAdmitter is the service surface the controller depends on
type RoutineAdmitter interface {
	Admit(ctx context.Context, req *dto.AdmitRoutineRequest) (*models.Routine, error)
	GetAll(ctx context.Context) ([]*models.Routine, error)
	Delete(ctx context.Context, id int64) error
}

// RoutineController handles routine admission, listing and deletion
type RoutineController struct {
	routineService RoutineAdmitter
}

// NewRoutineController creates a new RoutineController
func NewRoutineController(routineService RoutineAdmitter) *RoutineController {
	return &RoutineController{routineService: routineService}
}

// AddRoutine admits a new routine entry
// @Summary Add a routine entry
// @Description Validates references, checks slot conflicts and duplicates, then stores the entry
// @Tags routines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdmitRoutineRequest true "Routine entry"
// @Success 201 {object} dto.APIResponse{data=models.Routine} "Routine added successfully"
// @Failure 400 {object} dto.APIResponse "Validation failure or schedule conflict"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Forbidden"
// @Router /routines [post]
func (c *RoutineController) AddRoutine(ctx *gin.Context) {
	var req dto.AdmitRoutineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(
			bindingMessage(err, "Invalid request body", map[string]string{
				"weekday": services.MsgInvalidDay,
			})))
		return
	}

	routine, err := c.routineService.Admit(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(http.StatusCreated, routine, "Routine added successfully"))
}

// GetRoutines lists all routine entries sorted by day and time
// @Summary List routine entries
// @Tags routines
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Routine} "Routines fetched successfully"
// @Router /routines [get]
func (c *RoutineController) GetRoutines(ctx *gin.Context) {
	routines, err := c.routineService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, routines, "Routines fetched successfully"))
}

// DeleteRoutine removes a routine entry by id
// @Summary Delete a routine entry
// @Tags routines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Routine ID"
// @Success 200 {object} dto.APIResponse "Routine deleted successfully"
// @Failure 404 {object} dto.APIResponse "Routine not found"
// @Router /routines/{id} [delete]
func (c *RoutineController) DeleteRoutine(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.routineService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "Routine deleted successfully"))
}
