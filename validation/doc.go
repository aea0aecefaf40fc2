// Package validation turns input validation failures into VALIDATION_ERROR
// service errors.
//
// Both entry points produce the same error shape: the message lists each
// failing field, and the "fields" parameter is an array of
// {field, tag, message} objects.
//
// # Struct Tag Validation
//
//	type CreateUserCmd struct {
//	    Name  string `json:"name" validate:"required,min=2"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//	err := validation.Validate(cmd)
//
// # Programmatic Validation
//
//	v := validation.New().
//	    Required("name", cmd.Name).
//	    MaxLength("name", cmd.Name, 64)
//	if err := v.Validate(); err != nil {
//	    return err
//	}
package validation
