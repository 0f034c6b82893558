package models

// Course represents a course owned by a department.
type Course struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DepartmentID int64  `json:"departmentId"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
