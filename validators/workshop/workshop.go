package workshopValidator

import (
	"encoding/json"
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

type WorkshopRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	Date        string `json:"date" form:"date" validate:"required"`
	Duration    string `json:"duration" form:"duration" validate:"required"`
	Location    string `json:"location" form:"location" validate:"required"`
	Price       string `json:"price" form:"price"`

	// Facilitator arrives as a JSON object string in multipart requests
	Facilitator string `json:"facilitator" form:"facilitator" validate:"required"`

	ParsedDate time.Time `json:"-" form:"-"`

	// Populated after the outer body passes validation
	ParsedFacilitator FacilitatorData `json:"-" form:"-" validate:"-"`
}

type FacilitatorData struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type SharedRegisterRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
}

// WorkshopId validates the :workshopId route parameter
func WorkshopId() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workshopIDStr := strings.TrimSpace(c.Params("workshopId"))
		if workshopIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Workshop ID is required!", nil)
		}

		workshopID, err := strconv.Atoi(workshopIDStr)
		if err != nil || workshopID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Workshop ID!", nil)
		}

		c.Locals("workshopID", uint(workshopID))
		return c.Next()
	}
}

// ShareId validates the :shareId route parameter
func ShareId() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shareId := strings.TrimSpace(c.Params("shareId"))
		if shareId == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Share ID is required!", nil)
		}

		c.Locals("shareId", shareId)
		return c.Next()
	}
}

// Pagination validates the optional page query parameter
func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := 1
		if pageStr := c.Query("page"); pageStr != "" {
			parsed, err := strconv.Atoi(pageStr)
			if err != nil || parsed < 1 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid page number!", nil)
			}
			page = parsed
		}

		c.Locals("page", page)
		return c.Next()
	}
}

// SaveWorkshop validates the admin create/update body, parsing the embedded
// facilitator JSON and the workshop date
func SaveWorkshop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(WorkshopRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if err := json.Unmarshal([]byte(reqData.Facilitator), &reqData.ParsedFacilitator); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid facilitator data!", nil)
		}
		if err := validate.Struct(reqData.ParsedFacilitator); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		parsed, err := parseDate(reqData.Date)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date format!", nil)
		}
		reqData.ParsedDate = parsed

		c.Locals("validatedWorkshop", reqData)
		return c.Next()
	}
}

// SharedRegister validates the anonymous share-link signup body
func SharedRegister() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SharedRegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedSharedRegister", reqData)
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
