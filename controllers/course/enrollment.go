package courseController

import (
	"errors"
	"fmt"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RegisterForCourse enrolls the authenticated user in a course. The ledger
// row and both denormalized back-references are written in one transaction;
// the notification and confirmation email are emitted afterwards and are
// best-effort.
func RegisterForCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: Please Login.", nil)
	}

	reqData := c.Locals("validatedRegistration").(*courseValidator.RegisterCourseRequest)
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	course, err := resolveCourse(db, reqData)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	// At most one registration per (user, course)
	var existing models.CourseRegistration
	lookupErr := db.Where("course_id = ? AND user_id = ?", course.ID, userID).First(&existing).Error
	if lookupErr == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are already enrolled in this course.", nil)
	}
	if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		log.Printf("Error checking registration for user %d, course %d: %v", userID, course.ID, lookupErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	registration := models.CourseRegistration{
		CourseID:    course.ID,
		UserID:      userID,
		MessageBody: reqData.MessageBody,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&registration).Error; err != nil {
			return err
		}

		user.Courses = append(user.Courses, course.ID)
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		course.EnrolledUsers = append(course.EnrolledUsers, userID)
		return tx.Save(course).Error
	})
	if err != nil {
		log.Printf("Error registering user %d for course %d: %v", userID, course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	notification := models.Notification{
		UserID:      &user.ID,
		Type:        models.NotificationCourse,
		Message:     fmt.Sprintf("%s just registered for the %s course.", user.FirstName, course.Title),
		UserMessage: reqData.MessageBody,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error creating course registration notification: %v", err)
	}

	utils.SendCourseRegistrationEmail(user.Email, user.FirstName, course.Title)

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "You have successfully enrolled in this course", fiber.Map{
		"registration": registration,
		"user":         user,
	})
}

// UnregisterFromCourse removes the ledger row and both back-references
func UnregisterFromCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: Please Login.", nil)
	}

	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var registration models.CourseRegistration
	if err := db.Where("course_id = ? AND user_id = ?", courseID, userID).First(&registration).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not registered for this course!", nil)
	}

	// Hard delete: a soft-deleted row would still occupy the unique
	// (course_id, user_id) index and block re-registration.
	if err := db.Unscoped().Delete(&registration).Error; err != nil {
		log.Printf("Error deleting registration %d: %v", registration.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	var user models.User
	if err := db.First(&user, userID).Error; err == nil {
		user.Courses = removeID(user.Courses, courseID)
		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error detaching course %d from user %d: %v", courseID, userID, err)
		}
	}

	var course models.Course
	if err := db.First(&course, courseID).Error; err == nil {
		course.EnrolledUsers = removeID(course.EnrolledUsers, userID)
		if err := db.Save(&course).Error; err != nil {
			log.Printf("Error detaching user %d from course %d: %v", userID, courseID, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Successfully unregistered from the course!", nil)
}

// GetRegisteredCourses lists the caller's courses, derived from the ledger
// rather than the denormalized list, newest catalog entries first.
func GetRegisteredCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: Please Login.", nil)
	}

	db := database.Database.Db

	var registrations []models.CourseRegistration
	if err := db.Where("user_id = ?", userID).Find(&registrations).Error; err != nil {
		log.Printf("Error fetching registrations for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	courseIDs := make([]uint, 0, len(registrations))
	for _, registration := range registrations {
		courseIDs = append(courseIDs, registration.CourseID)
	}

	courses := []models.Course{}
	if len(courseIDs) > 0 {
		if err := db.Where("id IN ?", courseIDs).Order("created_at desc").Find(&courses).Error; err != nil {
			log.Printf("Error fetching registered courses for user %d: %v", userID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
		}
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Registered courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetOtherCourses lists the courses the caller has NOT registered for
func GetOtherCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: Please Login.", nil)
	}

	db := database.Database.Db

	var registrations []models.CourseRegistration
	if err := db.Where("user_id = ?", userID).Find(&registrations).Error; err != nil {
		log.Printf("Error fetching registrations for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	query := db.Order("created_at desc")
	if len(registrations) > 0 {
		courseIDs := make([]uint, 0, len(registrations))
		for _, registration := range registrations {
			courseIDs = append(courseIDs, registration.CourseID)
		}
		query = query.Where("id NOT IN ?", courseIDs)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		log.Printf("Error fetching other courses for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Other courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetRegisteredUsers lists the users enrolled in a course (admin only)
func GetRegisteredUsers(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	var registrations []models.CourseRegistration
	if err := db.Where("course_id = ?", courseID).Find(&registrations).Error; err != nil {
		log.Printf("Error fetching registrations for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
	}

	userIDs := make([]uint, 0, len(registrations))
	for _, registration := range registrations {
		userIDs = append(userIDs, registration.UserID)
	}

	users := []models.User{}
	if len(userIDs) > 0 {
		if err := db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			log.Printf("Error fetching registered users for course %d: %v", courseID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal Server Error", nil)
		}
	}

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Registered users fetched successfully!", fiber.Map{
		"users": users,
	})
}

// GetDashboardMetrics returns headline counts for the admin dashboard
func GetDashboardMetrics(c *fiber.Ctx) error {
	db := database.Database.Db

	var userCount, courseCount, workshopCount, registrationCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&userCount)
	db.Model(&models.Course{}).Count(&courseCount)
	db.Model(&models.Workshop{}).Count(&workshopCount)
	db.Model(&models.CourseRegistration{}).Count(&registrationCount)

	return middleware.JsonResponseWith(c, fiber.StatusOK, true, "Dashboard metrics fetched successfully!", fiber.Map{
		"metrics": fiber.Map{
			"users":               userCount,
			"courses":             courseCount,
			"workshops":           workshopCount,
			"courseRegistrations": registrationCount,
		},
	})
}

// resolveCourse finds the target course by id or unique title
func resolveCourse(db *gorm.DB, reqData *courseValidator.RegisterCourseRequest) (*models.Course, error) {
	var course models.Course
	if reqData.CourseId != 0 {
		if err := db.First(&course, reqData.CourseId).Error; err != nil {
			return nil, err
		}
		return &course, nil
	}
	if err := db.Where("title = ?", reqData.CourseTitle).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
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
