package courseValidator

import (
	"lms/middleware"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var durationPattern = regexp.MustCompile(`^(\d+:\d{1,2}|\d+)$`)

func init() {
	// Durations are stored as text; only the two formats the parser understands are accepted.
	_ = validate.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		return durationPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
}

type CourseRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=200"`
	Description     string `json:"description" validate:"max=2000"`
	DurationMinutes int64  `json:"duration_minutes" validate:"gte=0"`
}

type CourseUpdateRequest struct {
	Title           string `json:"title" validate:"omitempty,min=3,max=200"`
	Description     string `json:"description" validate:"omitempty,max=2000"`
	DurationMinutes *int64 `json:"duration_minutes" validate:"omitempty,gte=0"`
}

type PublishRequest struct {
	IsPublished bool `json:"is_published"`
}

type PageRequest struct {
	Page  *int `query:"page"`
	Limit *int `query:"limit"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if ok, err := bindBody(c, reqData, fiber.StatusUnprocessableEntity); !ok {
			return err
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	idParam := IDParam("id", "courseID", "Course ID")
	return func(c *fiber.Ctx) error {
		reqData := new(CourseUpdateRequest)
		if ok, err := bindBody(c, reqData, fiber.StatusUnprocessableEntity); !ok {
			return err
		}
		c.Locals("validatedCourseUpdate", reqData)
		return idParam(c)
	}
}

// Publish validates a publish/unpublish toggle for the entity identified by param.
func Publish(param, localKey, label string) fiber.Handler {
	idParam := IDParam(param, localKey, label)
	return func(c *fiber.Ctx) error {
		// An empty body publishes.
		reqData := &PublishRequest{IsPublished: true}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}
		c.Locals("publishStatus", reqData.IsPublished)
		return idParam(c)
	}
}

// List validates optional page/limit query parameters. Missing values default to page 1, limit 10.
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PageRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// Pagination returns page, limit and offset from a validated PageRequest.
func Pagination(reqData *PageRequest) (int, int, int) {
	page, limit := 1, 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	return page, limit, (page - 1) * limit
}
