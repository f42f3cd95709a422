package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes wires the course catalog and enrollment endpoints
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/v1/courses")

	courseGroup.Get("/", courseController.GetCourses)
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), courseValidator.CreateCourse(), courseController.CreateCourse)

	// Enrollment before the :courseId wildcard
	courseGroup.Post("/register", middleware.JWTMiddleware, courseValidator.RegisterCourse(), courseController.RegisterForCourse)

	courseGroup.Get("/:courseId", middleware.JWTMiddleware, courseValidator.CourseId(), courseController.GetCourseById)
	courseGroup.Put("/:courseId", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), courseValidator.CourseId(), courseValidator.UpdateCourse(), courseController.UpdateCourse)
	courseGroup.Delete("/:courseId", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), courseValidator.CourseId(), courseController.DeleteCourse)

	dashboardGroup := app.Group("/api/v1/dashboard")

	dashboardGroup.Get("/registeredCourses", middleware.JWTMiddleware, courseController.GetRegisteredCourses)
	dashboardGroup.Get("/otherCourses", middleware.JWTMiddleware, courseController.GetOtherCourses)
	dashboardGroup.Get("/metrics", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), courseController.GetDashboardMetrics)
	dashboardGroup.Post("/:courseId/unregister", middleware.JWTMiddleware, courseValidator.CourseId(), courseController.UnregisterFromCourse)
	dashboardGroup.Get("/:courseId/registeredUsers", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), courseValidator.CourseId(), courseController.GetRegisteredUsers)
}
