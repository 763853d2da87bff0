// file: internals/helpers/bind.go
package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BindAndValidate parses the JSON body into dst and runs validator tags.
// Parse failures are 400, tag failures are 422 with per-field detail.
func BindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				fields := make(map[string][]string, len(ve))
				for _, fe := range ve {
					fields[fe.Field()] = append(fields[fe.Field()], fe.Tag())
				}
				return JsonValidationError(c, fields)
			}
			return JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

// BindQueryAndValidate does the same for query parameters.
func BindQueryAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.QueryParser(dst); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				fields := make(map[string][]string, len(ve))
				for _, fe := range ve {
					fields[fe.Field()] = append(fields[fe.Field()], fe.Tag())
				}
				return JsonValidationError(c, fields)
			}
			return JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}
