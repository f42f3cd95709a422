package courseValidator

import (
	"lms/middleware"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator reports field errors under their json names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type CourseRequest struct {
	Title           string `json:"title" form:"title" validate:"required"`
	Description     string `json:"description" form:"description" validate:"required"`
	InstructorName  string `json:"instructorName" form:"instructorName" validate:"required"`
	InstructorEmail string `json:"instructorEmail" form:"instructorEmail" validate:"required,email"`
	Duration        string `json:"duration" form:"duration" validate:"required"`
	Price           string `json:"price" form:"price"`
	Date            string `json:"date" form:"date"`

	ParsedDate time.Time `json:"-" form:"-"`
}

// RegisterCourseRequest identifies the target course by id or unique title.
type RegisterCourseRequest struct {
	CourseId    uint   `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
	MessageBody string `json:"messageBody"`
}

// CourseId validates the :courseId route parameter
func CourseId() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("courseId"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

// CreateCourse validates the admin course creation body
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if reqData.Date != "" {
			parsed, err := parseDate(reqData.Date)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date format!", nil)
			}
			reqData.ParsedDate = parsed
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the admin course update body (same shape as create)
func UpdateCourse() fiber.Handler {
	return CreateCourse()
}

// RegisterCourse validates the enrollment body: a course id or title plus an
// optional message
func RegisterCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseId == 0 && strings.TrimSpace(reqData.CourseTitle) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course title or ID is required!", nil)
		}

		c.Locals("validatedRegistration", reqData)
		return c.Next()
	}
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "failed on " + fe.Tag()
		}
	}
	return errors
}
