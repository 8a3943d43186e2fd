package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/errors"
)

// ValidateForm binds and validates a multipart/urlencoded form request.
func ValidateForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		return translateBindingError(err)
	}
	return nil
}

func translateBindingError(err error) error {
	validationErrors := make(map[string]string)

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrs {
			field := strings.ToLower(fieldError.Field())

			switch fieldError.Tag() {
			case "required":
				validationErrors[field] = "is required"
			case "min":
				validationErrors[field] = "is too small"
			case "max":
				validationErrors[field] = "is too large"
			case "oneof":
				validationErrors[field] = "must be one of the allowed values"
			default:
				validationErrors[field] = "is invalid"
			}
		}
	} else {
		validationErrors["request"] = "invalid form data"
	}

	return errors.NewValidationError("Validation failed", validationErrors)
}
