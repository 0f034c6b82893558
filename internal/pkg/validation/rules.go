package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/rahuldey/uniroutine/internal/app/models"
)

// RegisterCustomValidators hooks domain validations into the binding validator
// gin uses for request DTOs.
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("weekday", validateWeekday); err != nil {
		return err
	}
	return v.RegisterValidation("roomtype", validateRoomType)
}

// validateWeekday accepts Monday through Saturday
func validateWeekday(fl validator.FieldLevel) bool {
	return models.IsValidWeekday(fl.Field().String())
}

// validateRoomType accepts the known room kinds
func validateRoomType(fl validator.FieldLevel) bool {
	return models.IsValidRoomType(fl.Field().String())
}
