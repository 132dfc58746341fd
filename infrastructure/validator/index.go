package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterValidation("fallback_password", validateFallbackPasswordStrength)
}

type Validator struct{}

func (v *Validator) ValidateStruct(payload interface{}) *[]error {
	return validateStruct(payload)
}

var ValidatorInstance = Validator{}

func validateStruct(payload interface{}) *[]error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var invalidErr *validator.InvalidValidationError
	if errors.As(err, &invalidErr) {
		parsed := []error{errors.New("invalid payload structure")}
		return &parsed
	}
	errs := []error{}
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errs = append(errs, fmt.Errorf("%s failed validation on rule %s", fieldErr.Field(), fieldErr.Tag()))
	}
	if len(errs) == 0 {
		return nil
	}
	return &errs
}
