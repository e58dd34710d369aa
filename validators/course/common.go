package courseValidator

import (
	"lms/middleware"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json field names in error maps
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationErrors turns validator errors into the field map used in responses.
func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = err.Error()
		return errors
	}
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			errors[field] = field + " is required!"
		case "gt":
			errors[field] = field + " must be greater than " + fe.Param() + "!"
		case "gte":
			errors[field] = field + " must be at least " + fe.Param() + "!"
		case "min":
			errors[field] = field + " must be at least " + fe.Param() + " characters long!"
		case "max":
			errors[field] = field + " must not exceed " + fe.Param() + " characters!"
		case "url":
			errors[field] = field + " must be a valid URL!"
		case "duration":
			errors[field] = field + " must be MM:SS or whole minutes!"
		default:
			errors[field] = field + " is invalid!"
		}
	}
	return errors
}

// IDParam validates a positive integer route parameter and stores it in Locals under localKey.
func IDParam(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
		}
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}
		c.Locals(localKey, id)
		return c.Next()
	}
}

// bindBody parses and validates the JSON body into dst. invalidStatus is
// used for validation failures.
func bindBody(c *fiber.Ctx, dst interface{}, invalidStatus int) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if err := validate.Struct(dst); err != nil {
		return false, middleware.JsonResponse(c, invalidStatus, false, "Validation failed!", validationErrors(err))
	}
	return true, nil
}
