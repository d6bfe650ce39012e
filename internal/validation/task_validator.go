package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/veranemoloko/task-tracker/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", validateNotBlank)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidateTitle checks that a task title is non-empty after trimming.
func ValidateTitle(title string) error {
	if err := validate.Var(title, "required,notblank"); err != nil {
		return fmt.Errorf("title must not be empty: %w", err)
	}
	return nil
}

// ValidateRecord checks a task decoded from the backing file. A record with
// a missing required field or timestamps out of order is a decode failure.
func ValidateRecord(task domain.Task) error {
	if err := validate.Struct(task); err != nil {
		return fmt.Errorf("invalid task record: %w", err)
	}
	return nil
}
