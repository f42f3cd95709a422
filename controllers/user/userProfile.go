package userController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	userValidator "lms/validators/user"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile returns the caller's profile
func GetUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: Please Login.", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "User profile fetched successfully.", fiber.Map{
		"user": user,
	})
}

// UpdateUserProfile updates the caller's profile
func UpdateUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: Please Login.", nil)
	}

	return updateProfile(c, userID)
}

// DeleteUserProfile deletes the caller's account (admin gated)
func DeleteUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: Please Login.", nil)
	}

	return deleteProfile(c, userID)
}

// GetAllUsers lists all non-admin accounts (admin only)
func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.Where("role = ?", models.RoleUser).Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	if len(users) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No users found!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
	})
}

// GetUserProfileByAdmin fetches any user's profile (admin only)
func GetUserProfileByAdmin(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)

	var user models.User
	if err := database.Database.Db.First(&user, targetID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "User profile fetched successfully!", fiber.Map{
		"user": user,
	})
}

// UpdateUserProfileByAdmin updates any user's profile (admin only)
func UpdateUserProfileByAdmin(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)
	return updateProfile(c, targetID)
}

// DeleteUserProfileByAdmin deletes any user's account (admin only)
func DeleteUserProfileByAdmin(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)
	return deleteProfile(c, targetID)
}

func updateProfile(c *fiber.Ctx, userID uint) error {
	reqData := c.Locals("validatedProfile").(*userValidator.UpdateProfileRequest)
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.FirstName = reqData.FirstName
	user.LastName = reqData.LastName
	user.Email = reqData.Email
	if reqData.Gender != "" {
		user.Gender = reqData.Gender
	}
	if reqData.Location != "" {
		user.Location = reqData.Location
	}
	if reqData.PhoneNumber != "" {
		user.PhoneNumber = reqData.PhoneNumber
	}

	if file, err := c.FormFile("userImage"); err == nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving user image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save user image!", nil)
		}
		user.UserImage = utils.GetFileURL(path)
	}

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User profile not updated!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "User profile updated successfully!", fiber.Map{
		"user": user,
	})
}

func deleteProfile(c *fiber.Ctx, userID uint) error {
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	// Hard delete so the freed email can be registered again
	if err := db.Unscoped().Delete(&user).Error; err != nil {
		log.Printf("Error deleting user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User profile deleted successfully!", nil)
}
