package courseController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetCourses lists the full course catalog sorted by title
func GetCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Order("title").Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Courses found!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseById fetches a single course
func GetCourseById(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Successfully fetched course by Id", fiber.Map{
		"course": course,
	})
}

// CreateCourse creates a catalog entry (admin only)
func CreateCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	db := database.Database.Db

	// Course titles are unique
	if err := db.Where("title = ?", reqData.Title).First(&models.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course with this title already exists!", nil)
	}

	newCourse := models.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Instructor: models.Instructor{
			Name:  reqData.InstructorName,
			Email: reqData.InstructorEmail,
		},
		Duration: reqData.Duration,
		Price:    reqData.Price,
		Date:     reqData.ParsedDate,
	}

	if file, err := c.FormFile("courseImage"); err == nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving course image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course image!", nil)
		}
		newCourse.CourseImage = utils.GetFileURL(path)
		newCourse.CourseImagePublicId = path
	}

	if err := db.Create(&newCourse).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusCreated, true, "Course created successfully.", fiber.Map{
		"course": newCourse,
	})
}

// UpdateCourse updates a catalog entry (admin only)
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	// The new title must not collide with another course
	var existing models.Course
	if err := db.Where("title = ? AND id <> ?", reqData.Title, courseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course with this title already exists!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Instructor = models.Instructor{
		Name:  reqData.InstructorName,
		Email: reqData.InstructorEmail,
	}
	course.Duration = reqData.Duration
	if reqData.Price != "" {
		course.Price = reqData.Price
	}
	if !reqData.ParsedDate.IsZero() {
		course.Date = reqData.ParsedDate
	}

	if file, err := c.FormFile("courseImage"); err == nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving course image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course image!", nil)
		}
		if course.CourseImagePublicId != "" {
			utils.DeleteHostedImage(course.CourseImagePublicId)
		}
		course.CourseImage = utils.GetFileURL(path)
		course.CourseImagePublicId = path
	}

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Course updated successfully.", fiber.Map{
		"course": course,
	})
}

// DeleteCourse removes a course and cleans up every reference to it: the
// ledger rows and the denormalized course list of each enrolled user.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	// Detach the course from every enrolled user's list
	for _, userID := range course.EnrolledUsers {
		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			continue
		}
		user.Courses = removeID(user.Courses, courseID)
		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error detaching course %d from user %d: %v", courseID, userID, err)
		}
	}

	// Hard deletes throughout: tombstones would keep the (course_id, user_id)
	// ledger index and the unique title occupied.
	if err := db.Unscoped().Where("course_id = ?", courseID).Delete(&models.CourseRegistration{}).Error; err != nil {
		log.Printf("Error deleting registrations for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	if course.CourseImagePublicId != "" {
		utils.DeleteHostedImage(course.CourseImagePublicId)
	}

	if err := db.Unscoped().Delete(&course).Error; err != nil {
		log.Printf("Error deleting course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", nil)
}
