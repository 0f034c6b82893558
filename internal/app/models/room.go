package models

// Room represents a physical room classes are scheduled in
type Room struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Capacity     int      `json:"capacity"`
	Type         RoomType `json:"type"`
	DepartmentID int64    `json:"departmentId"`

	Department *Department `json:"department,omitempty"`
}
