package notificationRoutes

import (
	notificationController "lms/controllers/notification"
	"lms/middleware"
	"lms/models"
	notificationValidator "lms/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes wires the notification endpoints
func SetupNotificationRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/api/v1/dashboard")

	dashboardGroup.Get("/notifications", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), notificationController.GetAllNotifications)
	dashboardGroup.Get("/user/notifications", middleware.JWTMiddleware, notificationController.FindNotificationsByUserId)

	dashboardGroup.Put("/notifications/:notificationId", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), notificationValidator.NotificationId(), notificationController.MarkNotificationAsRead)
	dashboardGroup.Put("/notifications", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), notificationController.MarkAllNotificationsAsRead)

	dashboardGroup.Delete("/notifications/:notificationId", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), notificationValidator.NotificationId(), notificationController.DeleteNotification)
	dashboardGroup.Delete("/notifications", middleware.JWTMiddleware, middleware.AuthorizeRole(models.RoleAdmin), notificationController.DeleteAllNotifications)
}
