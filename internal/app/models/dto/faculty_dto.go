package dto

// CreateFacultyRequest represents a request to add a faculty member
type CreateFacultyRequest struct {
	Name        string `json:"name" binding:"required" example:"Dr. A. Sen"`
	Email       string `json:"email" binding:"required,email" example:"a.sen@univ.edu"`
	Designation string `json:"designation" binding:"required" example:"Assistant Professor"`
	Contact     string `json:"contact" binding:"required" example:"+91 98000 00000"`
	Department  string `json:"department" binding:"required" example:"CSE"`
}
