package config

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	serrors "github.com/kbukum/serialization/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their config key.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "-" || name == "" {
				return strings.ToLower(fld.Name)
			}
			return name
		})
	})
	return validate
}

// ValidateStruct validates s using its `validate` struct tags and returns an
// INVALID_CONFIG AppError listing every failing field.
func ValidateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return serrors.InvalidConfig("", err.Error())
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := fieldPath(e.Namespace())
		message := formatValidationError(e)
		fieldErrors = append(fieldErrors, FieldError{Field: field, Message: message})
		messages = append(messages, field+" "+message)
	}

	field := ""
	if len(fieldErrors) == 1 {
		field = fieldErrors[0].Field
	}
	return serrors.InvalidConfig(field, strings.Join(messages, "; ")).
		WithDetail("fields", fieldErrors)
}

func wrapLoggingError(err error) error {
	return serrors.InvalidConfig("logging", err.Error()).WithCause(err)
}

// fieldPath drops the root struct name: "ServiceConfig.serialization.provider"
// becomes "serialization.provider".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "gte":
		return "must be >= " + e.Param()
	case "lte":
		return "must be <= " + e.Param()
	default:
		return "is invalid"
	}
}
