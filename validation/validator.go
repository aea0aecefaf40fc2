package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/svcerrors/errors"
)

// Validator collects field errors.
type Validator struct {
	errors []FieldError
}

// FieldError describes one failing field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Value returns the parameter form of the field error.
func (f FieldError) Value() errors.Value {
	return errors.Object(map[string]errors.Value{
		"field":   errors.String(f.Field),
		"tag":     errors.String(f.Tag),
		"message": errors.String(f.Message),
	})
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// AddError adds a field error with the generic "invalid" tag.
func (v *Validator) AddError(field, message string) {
	v.AddFieldError(field, "invalid", message)
}

// AddFieldError adds a field error for the given rule tag.
func (v *Validator) AddFieldError(field, tag, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Tag: tag, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns a VALIDATION_ERROR describing every collected field error,
// or nil when there are none.
func (v *Validator) Validate() *errors.ServiceError {
	if !v.HasErrors() {
		return nil
	}
	return newValidationError(v.errors)
}

// newValidationError builds the error shared by Validator and Validate.
func newValidationError(fields []FieldError) *errors.ServiceError {
	messages := make([]string, len(fields))
	items := make([]errors.Value, len(fields))
	for i, f := range fields {
		messages[i] = f.Field + ": " + f.Message
		items[i] = f.Value()
	}
	return errors.Validation("Validation failed: {0}").
		Bind(strings.Join(messages, "; ")).
		ParameterValue("fields", errors.Array(items...))
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddFieldError(field, "required", "is required")
	}
	return v
}

// RequiredUUID checks if a string is a valid non-nil UUID.
func (v *Validator) RequiredUUID(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddFieldError(field, "required", "is required")
		return v
	}

	parsed, err := uuid.Parse(value)
	if err != nil {
		v.AddFieldError(field, "uuid", "must be a valid UUID")
		return v
	}

	if parsed == uuid.Nil {
		v.AddFieldError(field, "uuid", "must not be empty")
	}

	return v
}

// OptionalUUID checks if a non-empty string is a valid UUID.
func (v *Validator) OptionalUUID(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := uuid.Parse(value); err != nil {
		v.AddFieldError(field, "uuid", "must be a valid UUID")
	}
	return v
}

// MaxLength checks if a string is within max length.
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	if len(value) > maxLen {
		v.AddFieldError(field, "max", fmt.Sprintf("must be %d characters or less", maxLen))
	}
	return v
}

// MinLength checks if a string meets minimum length.
func (v *Validator) MinLength(field, value string, minLen int) *Validator {
	if len(value) < minLen {
		v.AddFieldError(field, "min", fmt.Sprintf("must be at least %d characters", minLen))
	}
	return v
}

// Range checks if a number is within a range.
func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	if value < minVal || value > maxVal {
		v.AddFieldError(field, "range", fmt.Sprintf("must be between %d and %d", minVal, maxVal))
	}
	return v
}

// Min checks if a number meets minimum value.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.AddFieldError(field, "min", fmt.Sprintf("must be at least %d", minVal))
	}
	return v
}

// Max checks if a number is within max value.
func (v *Validator) Max(field string, value, maxVal int) *Validator {
	if value > maxVal {
		v.AddFieldError(field, "max", fmt.Sprintf("must be %d or less", maxVal))
	}
	return v
}

// Pattern checks if a non-empty string matches a regex pattern.
func (v *Validator) Pattern(field, value, pattern string) *Validator {
	if value == "" {
		return v
	}
	matched, err := regexp.MatchString(pattern, value)
	if err != nil || !matched {
		v.AddFieldError(field, "pattern", "does not match required format")
	}
	return v
}

// OneOf checks if a non-empty value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" || slices.Contains(allowed, value) {
		return v
	}
	v.AddFieldError(field, "oneof", fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds message for field unless condition holds.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddFieldError(field, "custom", message)
	}
	return v
}

// Required validates a single required field.
func Required(field, value string) error {
	if se := New().Required(field, value).Validate(); se != nil {
		return se
	}
	return nil
}

// ValidateUUID validates and parses a UUID string.
func ValidateUUID(field, value string) (uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil, errors.MissingField(field)
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.InvalidFormat(field, "UUID").WithCause(err)
	}

	return id, nil
}
