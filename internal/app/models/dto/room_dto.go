package dto

// CreateRoomRequest represents a request to add a room
type CreateRoomRequest struct {
	Name       string `json:"name" binding:"required" example:"R-101"`
	Capacity   int    `json:"capacity" binding:"required" example:"60"`
	Type       string `json:"type" binding:"required,roomtype" example:"Classroom"`
	Department string `json:"department" binding:"required" example:"CSE"`
}
