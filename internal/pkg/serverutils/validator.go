package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into a 400
// fiber error the error handler can render directly.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var issues []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			issues = append(issues, fmt.Sprintf("%s failed on '%s'", fieldErr.Field(), fieldErr.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(issues, "; "))
	}
	return nil
}
