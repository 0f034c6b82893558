package dto

// AdmitRoutineRequest represents a request to add a routine entry. Course,
// faculty and room may be a name or a numeric id; department may be a code or
// a numeric id. Presence of every field is enforced by the admission pipeline
// itself so that an empty field yields the documented message rather than a
// binding error.
type AdmitRoutineRequest struct {
	Course     string `json:"course" example:"B.Tech"`
	Department string `json:"department" example:"CSE"`
	Semester   string `json:"semester" example:"3"`
	Subject    string `json:"subject" example:"Data Structures"`
	Faculty    string `json:"faculty" example:"Dr. A. Sen"`
	Room       string `json:"room" example:"R-101"`
	Day        string `json:"day" binding:"omitempty,weekday" example:"Monday"`
	Time       string `json:"time" example:"10:00 AM - 11:00 AM"`
}
