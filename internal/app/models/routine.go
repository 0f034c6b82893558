package models

// Routine is a scheduled-class entry in the weekly timetable. Day and time are
// stored verbatim; conflict checks compare them by exact string match.
type Routine struct {
	ID           int64  `json:"id"`
	CourseID     int64  `json:"courseId"`
	DepartmentID int64  `json:"departmentId"`
	Semester     string `json:"semester"`
	Subject      string `json:"subject"`
	FacultyID    int64  `json:"facultyId"`
	RoomID       int64  `json:"roomId"`
	Day          string `json:"day"`
	Time         string `json:"time"`

	// Relations (populated for display)
	Course     *Course     `json:"course,omitempty"`
	Department *Department `json:"department,omitempty"`
	Faculty    *Faculty    `json:"faculty,omitempty"`
	Room       *Room       `json:"room,omitempty"`
}
