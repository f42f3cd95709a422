package userRoutes

import (
	userController "lms/controllers/user"
	"lms/middleware"
	"lms/models"
	userValidator "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes wires the profile and admin user-management endpoints
func SetupUserRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/api/v1/dashboard")

	dashboardGroup.Get("/profile", middleware.JWTMiddleware, userController.GetUserProfile)
	dashboardGroup.Put("/profile", middleware.JWTMiddleware, userValidator.UpdateProfile(), userController.UpdateUserProfile)
	dashboardGroup.Delete("/profile", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), userController.DeleteUserProfile)

	dashboardGroup.Get("/users", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), userController.GetAllUsers)
	dashboardGroup.Get("/users/:userId", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), userValidator.UserId(), userController.GetUserProfileByAdmin)
	dashboardGroup.Put("/users/:userId", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), userValidator.UserId(), userValidator.UpdateProfile(), userController.UpdateUserProfileByAdmin)
	dashboardGroup.Delete("/users/:userId", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), userValidator.UserId(), userController.DeleteUserProfileByAdmin)
}
