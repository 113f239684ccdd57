// Package validate builds the struct validator shared by the service
// packages and turns its failures into one readable message.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"venuebook/internal/domain"
)

var (
	phoneRegex    = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{6,19}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,64}$`)
)

// New returns a validator that reports fields by their json name and knows
// the venue rules: phone, event_type, calendar_date, gallery_category and
// username.
func New() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"phone": func(fl validator.FieldLevel) bool {
			return phoneRegex.MatchString(strings.TrimSpace(fl.Field().String()))
		},
		"event_type": func(fl validator.FieldLevel) bool {
			return domain.IsEventType(fl.Field().String())
		},
		"calendar_date": func(fl validator.FieldLevel) bool {
			_, err := domain.ParseDate(fl.Field().String())
			return err == nil
		},
		"gallery_category": func(fl validator.FieldLevel) bool {
			return domain.GalleryCategory(fl.Field().String()).Valid()
		},
		"username": func(fl validator.FieldLevel) bool {
			return usernameRegex.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return v, nil
}

// Message validates s and describes the first offending field. ok is false
// when s is valid; a non-nil err means validation itself could not run.
func Message(v *validator.Validate, s any) (msg string, ok bool, err error) {
	verr := v.Struct(s)
	if verr == nil {
		return "", false, nil
	}
	var errs validator.ValidationErrors
	if !errors.As(verr, &errs) || len(errs) == 0 {
		return "", false, verr
	}
	return describe(errs[0]), true, nil
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "phone":
		return field + " must be a valid phone number"
	case "event_type":
		return field + " must be one of: " + strings.Join(domain.EventTypes, ", ")
	case "calendar_date":
		return fmt.Sprintf("invalid date %q: want YYYY-MM-DD", fe.Value())
	case "gallery_category":
		names := make([]string, 0, len(domain.GalleryCategories))
		for _, c := range domain.GalleryCategories {
			names = append(names, string(c))
		}
		return field + " must be one of: " + strings.Join(names, ", ")
	case "username":
		return field + " must be 3-64 characters of letters, digits, '.', '_' or '-'"
	case "min":
		if isString {
			if fe.Param() == "1" {
				return field + " must not be empty"
			}
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have at most %s entries", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	}
	return field + " is invalid"
}
