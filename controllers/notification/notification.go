package notificationController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetAllNotifications lists every notification, newest first (admin only)
func GetAllNotifications(c *fiber.Ctx) error {
	var notifications []models.Notification
	if err := database.Database.Db.Preload("User").Order("created_at desc").Find(&notifications).Error; err != nil {
		log.Printf("Error fetching notifications: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Notifications fetched successfully!", fiber.Map{
		"notifications": notifications,
	})
}

// FindNotificationsByUserId lists the caller's notifications, newest first
func FindNotificationsByUserId(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: Please Login", nil)
	}

	var notifications []models.Notification
	if err := database.Database.Db.Where("user_id = ?", userID).Order("created_at desc").Find(&notifications).Error; err != nil {
		log.Printf("Error fetching notifications for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	// Empty feed responds 200 with success=false
	if len(notifications) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, false, "No notifications found for this user!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Notifications fetched successfully!", fiber.Map{
		"notifications": notifications,
	})
}

// MarkNotificationAsRead flips the isRead flag (admin only)
func MarkNotificationAsRead(c *fiber.Ctx) error {
	notificationID := c.Locals("notificationID").(uint)
	db := database.Database.Db

	var notification models.Notification
	if err := db.First(&notification, notificationID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	notification.IsRead = true
	if err := db.Save(&notification).Error; err != nil {
		log.Printf("Error marking notification %d as read: %v", notificationID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Notification marked as read successfully!", fiber.Map{
		"notification": notification,
	})
}

// MarkAllNotificationsAsRead flips isRead on every notification (admin only)
func MarkAllNotificationsAsRead(c *fiber.Ctx) error {
	db := database.Database.Db

	if err := db.Model(&models.Notification{}).Where("is_read = ?", false).Update("is_read", true).Error; err != nil {
		log.Printf("Error marking all notifications as read: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications marked as read successfully!", nil)
}

// DeleteNotification removes a single notification (admin only)
func DeleteNotification(c *fiber.Ctx) error {
	notificationID := c.Locals("notificationID").(uint)
	db := database.Database.Db

	var notification models.Notification
	if err := db.First(&notification, notificationID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if err := db.Unscoped().Delete(&notification).Error; err != nil {
		log.Printf("Error deleting notification %d: %v", notificationID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification deleted successfully!", nil)
}

// DeleteAllNotifications clears the notification log (admin only)
func DeleteAllNotifications(c *fiber.Ctx) error {
	db := database.Database.Db

	if err := db.Unscoped().Where("1 = 1").Delete(&models.Notification{}).Error; err != nil {
		log.Printf("Error deleting all notifications: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications deleted successfully!", nil)
}
