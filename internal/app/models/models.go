package models

// RoleType defines the user role type
type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

// Weekday values accepted for routine entries. Sunday is not a class day.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// IsValidWeekday reports whether day is one of the allowed routine days.
func IsValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// RoomType defines the kind of a room
type RoomType string

const (
	RoomClassroom   RoomType = "Classroom"
	RoomLab         RoomType = "Lab"
	RoomSeminarHall RoomType = "Seminar Hall"
)

// IsValidRoomType reports whether t is one of the allowed room types.
func IsValidRoomType(t string) bool {
	switch RoomType(t) {
	case RoomClassroom, RoomLab, RoomSeminarHall:
		return true
	}
	return false
}
