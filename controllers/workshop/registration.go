package workshopController

import (
	"fmt"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	workshopValidator "lms/validators/workshop"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// RegisterForWorkshop registers the authenticated user for an upcoming
// workshop. The lookup is date-filtered so a workshop that slips into the
// past between request and write can never be registered. The attendee list
// and the user's workshop list are saved independently.
func RegisterForWorkshop(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: Please Login.", nil)
	}

	workshopID := c.Locals("workshopID").(uint)
	db := database.Database.Db

	var workshop models.Workshop
	if err := db.Where("id = ? AND date >= ?", workshopID, time.Now()).First(&workshop).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Workshop not found! Make sure you chose an upcoming workshop", nil)
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	// Registered means both sides agree; a one-sided state is written again.
	alreadyRegistered := workshop.HasAttendee(userID) && user.HasWorkshop(workshopID)
	if alreadyRegistered {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You have already registered for this workshop!", nil)
	}

	workshop.Attendees = append(workshop.Attendees, userID)
	if err := db.Save(&workshop).Error; err != nil {
		log.Printf("Error saving workshop %d attendees: %v", workshopID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	user.Workshops = append(user.Workshops, workshopID)
	if !user.HasChosenPath {
		user.HasChosenPath = true
	}
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving user %d workshops: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	notification := models.Notification{
		UserID:  &user.ID,
		Type:    models.NotificationWorkshop,
		Message: fmt.Sprintf("%s just registered for the %s workshop.", user.FirstName, workshop.Title),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error creating workshop registration notification: %v", err)
	}

	utils.SendWorkshopRegistrationEmail(user.Email, user.FirstName, workshop.Title, workshop.Date, workshop.Duration, workshop.Location)

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Successfully registered for the workshop!", fiber.Map{
		"registration": fiber.Map{
			"workshop":     workshop,
			"isRegistered": workshop.HasAttendee(userID),
		},
	})
}

// UnregisterFromWorkshop removes the user from the workshop. Removal
// requires the consistent both-sides definition of registered.
func UnregisterFromWorkshop(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: Please Login.", nil)
	}

	workshopID := c.Locals("workshopID").(uint)
	db := database.Database.Db

	var workshop models.Workshop
	if err := db.First(&workshop, workshopID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Workshop not found!", nil)
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	isRegistered := workshop.HasAttendee(userID) && user.HasWorkshop(workshopID)
	if !isRegistered {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are not registered for this workshop!", nil)
	}

	workshop.Attendees = removeID(workshop.Attendees, userID)
	user.Workshops = removeID(user.Workshops, workshopID)

	if err := db.Save(&workshop).Error; err != nil {
		log.Printf("Error saving workshop %d attendees: %v", workshopID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error saving user %d workshops: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Successfully unregistered from the workshop!", nil)
}

// RegisterSharedWorkshop records an anonymous signup through a share link,
// independent of the authenticated attendee model.
func RegisterSharedWorkshop(c *fiber.Ctx) error {
	shareId := c.Locals("shareId").(string)
	reqData := c.Locals("validatedSharedRegister").(*workshopValidator.SharedRegisterRequest)
	db := database.Database.Db

	var workshop models.Workshop
	if err := db.Where("share_id = ?", shareId).First(&workshop).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Workshop not found!", nil)
	}

	if workshop.Date.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot register for a past workshop!", nil)
	}

	var existing models.Register
	if err := db.Where("workshop_id = ? AND email = ?", workshop.ID, reqData.Email).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You have already registered for this workshop!", nil)
	}

	newRegistration := models.Register{
		WorkshopID:  workshop.ID,
		FullName:    reqData.FullName,
		Email:       reqData.Email,
		PhoneNumber: reqData.PhoneNumber,
	}
	if err := db.Create(&newRegistration).Error; err != nil {
		log.Printf("Error creating shared registration: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Workshop registration failed!", nil)
	}

	// Anonymous signup: no user id on the notification
	notification := models.Notification{
		Type:    models.NotificationWorkshop,
		Message: fmt.Sprintf("%s just registered for the %s workshop.", reqData.FullName, workshop.Title),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error creating shared registration notification: %v", err)
	}

	utils.SendWorkshopRegistrationEmail(reqData.Email, reqData.FullName, workshop.Title, workshop.Date, workshop.Duration, workshop.Location)

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Successfully registered for the workshop!", fiber.Map{
		"data": newRegistration,
	})
}

// GetMyWorkshops lists the workshops on the caller's registration list
func GetMyWorkshops(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: Please Login.", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if len(user.Workshops) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No workshops found!", nil)
	}

	var workshops []models.Workshop
	if err := db.Where("id IN ?", []uint(user.Workshops)).Order("date asc").Find(&workshops).Error; err != nil {
		log.Printf("Error fetching workshops for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "These are your workshops.", fiber.Map{
		"workshops": workshops,
	})
}

// GetWorkshopAttendees lists a workshop's attendee profiles (admin only)
func GetWorkshopAttendees(c *fiber.Ctx) error {
	workshopID := c.Locals("workshopID").(uint)
	db := database.Database.Db

	var workshop models.Workshop
	if err := db.First(&workshop, workshopID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Workshop not found!", nil)
	}

	attendees := []models.User{}
	if len(workshop.Attendees) > 0 {
		if err := db.Where("id IN ?", []uint(workshop.Attendees)).Find(&attendees).Error; err != nil {
			log.Printf("Error fetching attendees for workshop %d: %v", workshopID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
		}
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Workshop attendees fetched successfully.", fiber.Map{
		"attendees": attendees,
	})
}

// GetRegisteredWorkshops lists workshops with at least one attendee plus
// attendance totals (admin only)
func GetRegisteredWorkshops(c *fiber.Ctx) error {
	db := database.Database.Db

	var allWorkshops []models.Workshop
	if err := db.Find(&allWorkshops).Error; err != nil {
		log.Printf("Error fetching workshops: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	workshops := make([]models.Workshop, 0, len(allWorkshops))
	totalAttendees := 0
	type workshopDetail struct {
		Title     string `json:"title"`
		Attendees int    `json:"attendees"`
	}
	details := []workshopDetail{}

	for _, workshop := range allWorkshops {
		if len(workshop.Attendees) == 0 {
			continue
		}
		workshops = append(workshops, workshop)
		totalAttendees += len(workshop.Attendees)
		details = append(details, workshopDetail{Title: workshop.Title, Attendees: len(workshop.Attendees)})
	}

	if len(workshops) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No registered workshops found!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "These are the registered workshops.", fiber.Map{
		"workshops":       workshops,
		"workshopCount":   len(workshops),
		"workshopDetails": details,
		"totalAttendees":  totalAttendees,
	})
}

func removeID(ids datatypes.JSONSlice[uint], target uint) datatypes.JSONSlice[uint] {
	filtered := make(datatypes.JSONSlice[uint], 0, len(ids))
	for _, id := range ids {
		if id != target {
			filtered = append(filtered, id)
		}
	}
	return filtered
}
