package dto

// CreateCourseRequest represents a request to create a course. Department may
// be a department code ("CSE") or a numeric department id.
type CreateCourseRequest struct {
	Name       string `json:"name" binding:"required" example:"B.Tech"`
	Department string `json:"department" binding:"required" example:"CSE"`
}
