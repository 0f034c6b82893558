package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rahuldey/uniroutine/internal/app/controllers"
	"github.com/rahuldey/uniroutine/internal/app/models"
	"github.com/rahuldey/uniroutine/internal/middleware"
	"github.com/rahuldey/uniroutine/internal/pkg/realtime"
)

// SetupRouter configures all application routes. Listings require an
// authenticated caller; every mutation is admin-only.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	routineController *controllers.RoutineController,
	departmentController *controllers.DepartmentController,
	courseController *controllers.CourseController,
	facultyController *controllers.FacultyController,
	roomController *controllers.RoomController,
	realtimeHandler *realtime.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/verify-otp", authController.VerifyOTP)
		auth.POST("/resend-otp", authController.ResendOTP)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/verify-forgot-password-otp", authController.VerifyForgotPasswordOTP)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.GetCurrentUser)

		authenticated.GET("/routines", routineController.GetRoutines)
		authenticated.GET("/departments", departmentController.GetDepartments)
		authenticated.GET("/courses", courseController.GetCourses)
		authenticated.GET("/faculties", facultyController.GetFaculties)
		authenticated.GET("/rooms", roomController.GetRooms)

		authenticated.GET("/ws", realtimeHandler.HandleConnection)

		// --- Admin-only mutations ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.POST("/routines", routineController.AddRoutine)
			admin.DELETE("/routines/:id", routineController.DeleteRoutine)

			admin.POST("/departments", departmentController.AddDepartment)
			admin.DELETE("/departments/:id", departmentController.DeleteDepartment)

			admin.POST("/courses", courseController.AddCourse)
			admin.DELETE("/courses/:id", courseController.DeleteCourse)

			admin.POST("/faculties", facultyController.AddFaculty)
			admin.DELETE("/faculties/:id", facultyController.DeleteFaculty)

			admin.POST("/rooms", roomController.AddRoom)
			admin.DELETE("/rooms/:id", roomController.DeleteRoom)

			admin.GET("/users", authController.GetUsers)
			admin.DELETE("/users/:id", authController.DeleteUser)
		}
	}
}
