package api

import "github.com/go-playground/validator/v10"

// NewValidator builds the request validator with the custom rules the DTOs
// rely on.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	return v
}
