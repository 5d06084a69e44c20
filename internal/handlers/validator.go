package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// parseAndValidate decodes the request body into dst and runs struct
// validation, replying 400 with a field-level message on failure. Returns
// false when the request has already been answered.
func parseAndValidate(c *fiber.Ctx, dst interface{}) bool {
	if err := c.BodyParser(dst); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		msg := "Validation failed"
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			var fields []string
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
			msg = fmt.Sprintf("Validation failed: %s", strings.Join(fields, ", "))
		}
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msg,
		})
		return false
	}

	return true
}
