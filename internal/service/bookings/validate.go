package bookings

import (
	"github.com/go-playground/validator/v10"

	"venuebook/internal/validate"
)

// validateStruct turns validator failures into a single ValidationError
// naming the first offending field.
func validateStruct(v *validator.Validate, s any) error {
	msg, invalid, err := validate.Message(v, s)
	if err != nil {
		return err
	}
	if invalid {
		return validationError(msg)
	}
	return nil
}
