package dto

// CreateDepartmentRequest represents a request to create a department
type CreateDepartmentRequest struct {
	Code        string `json:"code" binding:"required" example:"CSE"`
	Name        string `json:"name" binding:"required" example:"Computer Science and Engineering"`
	Description string `json:"description" example:"Undergraduate and postgraduate programs"`
}
