package errors

import "net/http"

// --- Common Error Constructors ---

// ServiceUnavailable creates an error for a service that is temporarily unavailable.
func ServiceUnavailable(service string) *ServiceError {
	return New(CodeServiceUnavailable, NameServiceUnavailable, http.StatusServiceUnavailable,
		"The {0} is temporarily unavailable. Please try again.").
		Bind(service).
		Parameter("service", service)
}

// ConnectionFailed creates an error for a failed connection to a service.
func ConnectionFailed(service string) *ServiceError {
	return New(CodeConnectionFailed, NameConnectionFailed, http.StatusServiceUnavailable,
		"Unable to connect to {0}. Please verify the service is running.").
		Bind(service).
		Parameter("service", service)
}

// Timeout creates an error for a request that timed out.
func Timeout(operation string) *ServiceError {
	return New(CodeTimeout, NameTimeout, http.StatusGatewayTimeout,
		"The request took too long. Please try again.").
		Parameter("operation", operation)
}

// RateLimited creates an error for too many requests.
func RateLimited() *ServiceError {
	return New(CodeRateLimited, NameRateLimited, http.StatusTooManyRequests,
		"Too many requests. Please wait a moment and try again.")
}

// NotFound creates an error for a resource that was not found.
func NotFound(resource, id string) *ServiceError {
	e := New(CodeNotFound, NameNotFound, http.StatusNotFound,
		"The requested {0} was not found.").
		Bind(resource).
		Parameter("resource", resource)
	if id != "" {
		e.Parameter("id", id)
	}
	return e
}

// AlreadyExists creates an error for a resource that already exists.
func AlreadyExists(resource string) *ServiceError {
	return New(CodeAlreadyExists, NameAlreadyExists, http.StatusConflict,
		"A {0} with these details already exists.").
		Bind(resource).
		Parameter("resource", resource)
}

// Conflict creates an error for a conflict with the current state of the resource.
func Conflict(reason string) *ServiceError {
	return New(CodeConflict, NameConflict, http.StatusConflict, reason)
}

// InvalidInput creates an error for invalid input.
func InvalidInput(field, reason string) *ServiceError {
	e := New(CodeInvalidInput, NameInvalidInput, http.StatusBadRequest, "Invalid input: {0}").
		Bind(reason)
	if field != "" {
		e.Parameter("field", field)
	}
	return e
}

// Validation creates an error for validation failures.
func Validation(message string) *ServiceError {
	return New(CodeValidation, NameValidation, http.StatusBadRequest, message)
}

// MissingField creates an error for a missing required field.
func MissingField(field string) *ServiceError {
	return New(CodeMissingField, NameMissingField, http.StatusBadRequest,
		"Missing required field: {0}").
		Bind(field).
		Parameter("field", field)
}

// InvalidFormat creates an error for an invalid field format.
func InvalidFormat(field, expectedFormat string) *ServiceError {
	return New(CodeInvalidFormat, NameInvalidFormat, http.StatusBadRequest,
		"Invalid format for {0}. Expected: {1}").
		Bind(field).
		Bind(expectedFormat).
		Parameters(map[string]any{"field": field, "expected_format": expectedFormat})
}

// Unauthorized creates an error for unauthorized access.
func Unauthorized(reason string) *ServiceError {
	if reason == "" {
		reason = "Authentication required."
	}
	return New(CodeUnauthorized, NameUnauthorized, http.StatusUnauthorized, reason)
}

// Forbidden creates an error for forbidden access.
func Forbidden(reason string) *ServiceError {
	if reason == "" {
		reason = "You don't have permission to perform this action."
	}
	return New(CodeForbidden, NameForbidden, http.StatusForbidden, reason)
}

// TokenExpired creates an error for an expired authentication token.
func TokenExpired() *ServiceError {
	return New(CodeTokenExpired, NameTokenExpired, http.StatusUnauthorized,
		"Your session has expired. Please log in again.")
}

// InvalidToken creates an error for an invalid authentication token.
func InvalidToken() *ServiceError {
	return New(CodeInvalidToken, NameInvalidToken, http.StatusUnauthorized,
		"Invalid authentication token. Please log in again.")
}

// Internal creates an error for an internal server error.
func Internal(cause error) *ServiceError {
	return New(CodeInternal, NameInternal, http.StatusInternalServerError,
		"An unexpected error occurred. Please try again or contact support.").
		WithCause(cause)
}

// DatabaseError creates an error for a database failure.
func DatabaseError(cause error) *ServiceError {
	return New(CodeDatabaseError, NameDatabaseError, http.StatusInternalServerError,
		"A database error occurred. Please try again.").
		WithCause(cause)
}

// ExternalServiceError creates an error for a failure in an external service.
func ExternalServiceError(service string, cause error) *ServiceError {
	return New(CodeExternalService, NameExternalService, http.StatusBadGateway,
		"The {0} service encountered an error. Please try again.").
		Bind(service).
		Parameter("service", service).
		WithCause(cause)
}
