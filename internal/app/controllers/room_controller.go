package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahuldey/uniroutine/internal/app/models/dto"
	"github.com/rahuldey/uniroutine/internal/app/services"
	"github.com/rahuldey/uniroutine/internal/middleware"
	"github.com/rahuldey/uniroutine/internal/pkg/apperrors"
)

// RoomController handles room endpoints
type RoomController struct {
	roomService *services.RoomService
}

// NewRoomController creates a new RoomController
func NewRoomController(roomService *services.RoomService) *RoomController {
	return &RoomController{roomService: roomService}
}

// AddRoom adds a room
// @Summary Add a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoomRequest true "Room"
// @Success 201 {object} dto.APIResponse{data=models.Room} "Room added successfully"
// @Failure 400 {object} dto.APIResponse "Missing fields, bad type or duplicate name"
// @Router /rooms [post]
func (c *RoomController) AddRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(
			bindingMessage(err, services.MsgAllFieldsRequired, map[string]string{
				"roomtype": "Room type must be Classroom, Lab or Seminar Hall",
			})))
		return
	}

	room, err := c.roomService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(http.StatusCreated, room, "Room added successfully"))
}

// GetRooms lists all rooms sorted by name
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Room} "Rooms fetched successfully"
// @Router /rooms [get]
func (c *RoomController) GetRooms(ctx *gin.Context) {
	rooms, err := c.roomService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, rooms, "Rooms fetched successfully"))
}

// DeleteRoom removes a room by id
// @Summary Delete a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse "Room deleted successfully"
// @Failure 404 {object} dto.APIResponse "Room not found"
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.roomService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, nil, "Room deleted successfully"))
}
