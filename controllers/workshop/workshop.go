package workshopController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	workshopValidator "lms/validators/workshop"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

const workshopPageSize = 6

// GetUpcomingWorkshops lists workshops dated today or later, soonest first
func GetUpcomingWorkshops(c *fiber.Ctx) error {
	return listWorkshops(c, true)
}

// GetPreviousWorkshops lists past workshops, most recent first
func GetPreviousWorkshops(c *fiber.Ctx) error {
	return listWorkshops(c, false)
}

func listWorkshops(c *fiber.Ctx, upcoming bool) error {
	page := c.Locals("page").(int)
	db := database.Database.Db
	today := time.Now()

	query := db.Model(&models.Workshop{})
	status := "Previous"
	order := "date desc"
	if upcoming {
		query = query.Where("date >= ?", today)
		status = "Upcoming"
		order = "date asc"
	} else {
		query = query.Where("date < ?", today)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting workshops: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	var workshops []models.Workshop
	offset := (page - 1) * workshopPageSize
	if err := query.Order(order).Offset(offset).Limit(workshopPageSize).Find(&workshops).Error; err != nil {
		log.Printf("Error fetching workshops: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	if len(workshops) == 0 {
		if upcoming {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No upcoming workshops found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No previous workshops found!", nil)
	}

	totalPages := (total + workshopPageSize - 1) / workshopPageSize
	var prevPage interface{}
	if page > 1 {
		prevPage = page - 1
	}

	message := "These are the previous workshops for you."
	if upcoming {
		message = "These are the upcoming workshops for you."
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, message, fiber.Map{
		"status":         status,
		"currentPage":    page,
		"totalPages":     totalPages,
		"totalWorkshops": total,
		"hasNextPage":    int64(page*workshopPageSize) < total,
		"hasPrevPage":    page > 1,
		"nextPage":       page + 1,
		"prevPage":       prevPage,
		"workshops":      workshops,
	})
}

// GetWorkshopById fetches a single workshop
func GetWorkshopById(c *fiber.Ctx) error {
	workshopID := c.Locals("workshopID").(uint)

	var workshop models.Workshop
	if err := database.Database.Db.First(&workshop, workshopID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Workshop not found!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Workshop details fetched successfully.", fiber.Map{
		"workshop": workshop,
	})
}

// GetSharedWorkshop fetches a workshop through its public share id
func GetSharedWorkshop(c *fiber.Ctx) error {
	shareId := c.Locals("shareId").(string)

	var workshop models.Workshop
	if err := database.Database.Db.Where("share_id = ?", shareId).First(&workshop).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Workshop not found!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Workshop details fetched successfully.", fiber.Map{
		"workshop": workshop,
	})
}

// CreateWorkshop creates a workshop (admin only). The date must be in the
// future and (title, date) pairs are unique.
func CreateWorkshop(c *fiber.Ctx) error {
	reqData := c.Locals("validatedWorkshop").(*workshopValidator.WorkshopRequest)
	db := database.Database.Db

	var existing models.Workshop
	if err := db.Where("title = ? AND date = ?", reqData.Title, reqData.ParsedDate).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Workshop with this title and date already exists!", nil)
	}

	if reqData.ParsedDate.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Workshop date must be in the future!", nil)
	}

	shareId, err := utils.GenerateUniqueShareId(db, 8)
	if err != nil {
		log.Printf("Error generating share id: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	newWorkshop := models.Workshop{
		Title:       reqData.Title,
		Description: reqData.Description,
		Date:        reqData.ParsedDate,
		Duration:    reqData.Duration,
		Facilitator: models.Facilitator{
			Name:  reqData.ParsedFacilitator.Name,
			Email: reqData.ParsedFacilitator.Email,
		},
		Location: reqData.Location,
		ShareId:  shareId,
	}
	if reqData.Price != "" {
		newWorkshop.Price = reqData.Price
	}

	if file, err := c.FormFile("workshopImage"); err == nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving workshop image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save workshop image!", nil)
		}
		newWorkshop.WorkshopImage = utils.GetFileURL(path)
		newWorkshop.WorkshopImagePublicId = path
	}

	if err := db.Create(&newWorkshop).Error; err != nil {
		log.Printf("Error creating workshop: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create workshop!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusCreated, true, "Workshop created successfully.", fiber.Map{
		"workshop": newWorkshop,
	})
}

// UpdateWorkshop updates a workshop (admin only)
func UpdateWorkshop(c *fiber.Ctx) error {
	workshopID := c.Locals("workshopID").(uint)
	reqData := c.Locals("validatedWorkshop").(*workshopValidator.WorkshopRequest)
	db := database.Database.Db

	var workshop models.Workshop
	if err := db.First(&workshop, workshopID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Workshop not found!", nil)
	}

	if reqData.ParsedDate.Before(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Workshop date must be in the future!", nil)
	}

	workshop.Title = reqData.Title
	workshop.Description = reqData.Description
	workshop.Date = reqData.ParsedDate
	workshop.Duration = reqData.Duration
	workshop.Location = reqData.Location
	workshop.Facilitator = models.Facilitator{
		Name:  reqData.ParsedFacilitator.Name,
		Email: reqData.ParsedFacilitator.Email,
	}
	if reqData.Price != "" {
		workshop.Price = reqData.Price
	}

	if file, err := c.FormFile("workshopImage"); err == nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving workshop image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save workshop image!", nil)
		}
		if workshop.WorkshopImagePublicId != "" {
			utils.DeleteHostedImage(workshop.WorkshopImagePublicId)
		}
		workshop.WorkshopImage = utils.GetFileURL(path)
		workshop.WorkshopImagePublicId = path
	}

	if err := db.Save(&workshop).Error; err != nil {
		log.Printf("Error updating workshop %d: %v", workshopID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update workshop!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Workshop updated successfully.", fiber.Map{
		"workshop": workshop,
	})
}

// DeleteWorkshop removes a workshop (admin only). Before the workshop row
// goes away, its id is pulled from every attendee's workshop list.
func DeleteWorkshop(c *fiber.Ctx) error {
	workshopID := c.Locals("workshopID").(uint)
	db := database.Database.Db

	var workshop models.Workshop
	if err := db.First(&workshop, workshopID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Workshop not found!", nil)
	}

	// Phase one: detach the workshop from every attendee
	for _, userID := range workshop.Attendees {
		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			continue
		}
		user.Workshops = removeID(user.Workshops, workshopID)
		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error detaching workshop %d from user %d: %v", workshopID, userID, err)
		}
	}

	if workshop.WorkshopImagePublicId != "" {
		utils.DeleteHostedImage(workshop.WorkshopImagePublicId)
	}

	// Phase two: remove the workshop itself. Hard delete, otherwise the
	// tombstone keeps its share_id in the unique index.
	if err := db.Unscoped().Delete(&workshop).Error; err != nil {
		log.Printf("Error deleting workshop %d: %v", workshopID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete workshop!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Workshop deleted successfully.", nil)
}
