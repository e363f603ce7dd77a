package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/medagenda/clinic-api/pkg/errors"
)

// Validator validates structs against their `validate` tags.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks obj and converts the first failure into a validation error.
func (vl *Validator) Validate(obj interface{}) error {
	err := vl.v.Struct(obj)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return apperrors.NewValidationf("field %s failed on %q", fe.Field(), fe.Tag())
	}
	return apperrors.NewValidation(fmt.Sprintf("invalid input: %v", err))
}

// Var validates a single value against the given rules.
func (vl *Validator) Var(field string, value interface{}, rules string) error {
	if err := vl.v.Var(value, rules); err != nil {
		return apperrors.NewValidationf("field %s failed on %q", field, rules)
	}
	return nil
}
