package serverutils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and flattens any failures
// into a single 400 error the error handler can pass through.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		parts = append(parts, "field '"+fieldErr.Field()+"' failed on the '"+fieldErr.Tag()+"' rule")
	}
	return fiber.NewError(fiber.StatusBadRequest, strings.Join(parts, "; "))
}
