package validator

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// a fallback password must be at least 8 characters with a digit and a
// non-alphanumeric character
func validateFallbackPasswordStrength(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	hasDigit := false
	hasSpecialChar := false

	for _, char := range password {
		if unicode.IsDigit(char) {
			hasDigit = true
		} else if !unicode.IsLetter(char) {
			hasSpecialChar = true
		}
	}

	return hasDigit && hasSpecialChar
}
