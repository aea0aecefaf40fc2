package errors

// Validation errors
const (
	// CodeInvalidInput indicates the input is invalid.
	CodeInvalidInput uint32 = 1000
	// CodeValidation indicates one or more fields failed validation.
	CodeValidation uint32 = 1001
	// CodeMissingField indicates a required field is missing.
	CodeMissingField uint32 = 1002
	// CodeInvalidFormat indicates a field has an invalid format.
	CodeInvalidFormat uint32 = 1003
)

// Authentication/Authorization errors
const (
	// CodeUnauthorized indicates the request is unauthorized.
	CodeUnauthorized uint32 = 2001
	// CodeForbidden indicates the request is forbidden.
	CodeForbidden uint32 = 2002
	// CodeTokenExpired indicates the authentication token has expired.
	CodeTokenExpired uint32 = 2003
	// CodeInvalidToken indicates the authentication token is invalid.
	CodeInvalidToken uint32 = 2004
)

// Resource errors
const (
	// CodeNotFound indicates the requested resource was not found.
	CodeNotFound uint32 = 3001
	// CodeAlreadyExists indicates the resource already exists.
	CodeAlreadyExists uint32 = 3002
	// CodeConflict indicates a conflict with the current state of the resource.
	CodeConflict uint32 = 3003
)

// Connection/Availability errors (retryable)
const (
	// CodeServiceUnavailable indicates the service is temporarily unavailable.
	CodeServiceUnavailable uint32 = 4001
	// CodeConnectionFailed indicates a failed connection to a service.
	CodeConnectionFailed uint32 = 4002
	// CodeTimeout indicates the request timed out.
	CodeTimeout uint32 = 4003
	// CodeRateLimited indicates the client is rate limited.
	CodeRateLimited uint32 = 4004
)

// Internal errors
const (
	// CodeInternal indicates an internal server error.
	CodeInternal uint32 = 5000
	// CodeDatabaseError indicates a database error.
	CodeDatabaseError uint32 = 5001
	// CodeExternalService indicates an error from an external service.
	CodeExternalService uint32 = 5002
)

// Symbolic names for the catalog codes.
const (
	NameInvalidInput       = "INVALID_INPUT"
	NameValidation         = "VALIDATION_ERROR"
	NameMissingField       = "MISSING_FIELD"
	NameInvalidFormat      = "INVALID_FORMAT"
	NameUnauthorized       = "UNAUTHORIZED"
	NameForbidden          = "FORBIDDEN"
	NameTokenExpired       = "TOKEN_EXPIRED"
	NameInvalidToken       = "INVALID_TOKEN"
	NameNotFound           = "NOT_FOUND"
	NameAlreadyExists      = "ALREADY_EXISTS"
	NameConflict           = "CONFLICT"
	NameServiceUnavailable = "SERVICE_UNAVAILABLE"
	NameConnectionFailed   = "CONNECTION_FAILED"
	NameTimeout            = "TIMEOUT"
	NameRateLimited        = "RATE_LIMITED"
	NameInternal           = "INTERNAL_ERROR"
	NameDatabaseError      = "DATABASE_ERROR"
	NameExternalService    = "EXTERNAL_SERVICE_ERROR"
)

var retryableCodes = map[uint32]bool{
	CodeServiceUnavailable: true,
	CodeConnectionFailed:   true,
	CodeTimeout:            true,
	CodeRateLimited:        true,
	CodeDatabaseError:      true,
	CodeExternalService:    true,
	CodeInternal:           false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code uint32) bool {
	return retryableCodes[code]
}

// Retryable reports whether the operation that produced e can be retried.
func (e *ServiceError) Retryable() bool {
	return e != nil && IsRetryableCode(e.code)
}
