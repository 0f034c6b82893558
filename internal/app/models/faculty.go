package models

// Faculty represents a teaching staff member
type Faculty struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Designation  string `json:"designation"`
	Contact      string `json:"contact"`
	DepartmentID int64  `json:"departmentId"`

	Department *Department `json:"department,omitempty"`
}
