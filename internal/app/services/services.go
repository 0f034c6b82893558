package services

// Services defined in this package:
// - RoutineService: admission pipeline for schedule entries (resolution,
//   conflict detection, duplicate detection) plus listing and deletion
// - DepartmentService, CourseService, FacultyService, RoomService: entity CRUD
// - AuthService: registration with OTP verification, login, password reset
