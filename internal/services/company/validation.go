package company

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/vatscope/internal/models"
)

// ErrInvalidRecord is returned when an assembled company record fails validation
var ErrInvalidRecord = errors.New("invalid company record")

var nacebelPattern = regexp.MustCompile(`^\d{2}\.\d{3}$`)

// NewValidator returns a validator that knows the nacebel tag (XX.XXX activity codes)
func NewValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("nacebel", func(fl validator.FieldLevel) bool {
		return nacebelPattern.MatchString(fl.Field().String())
	})
	return validate
}

// ValidateCompany checks the struct tags of a company record
func ValidateCompany(validate *validator.Validate, company *models.Company) error {
	if company == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	if err := validate.Struct(company); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}
