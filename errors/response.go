package errors

import (
	stderrors "errors"
)

// IsServiceError checks if err is or wraps a ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return stderrors.As(err, &se)
}

// AsServiceError extracts a ServiceError from err if possible.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Wrap returns err as a ServiceError. A wrapped ServiceError is returned as
// is; any other error becomes an Internal error with err as its cause. A
// typed nil *ServiceError inside a non-nil error becomes a generic Internal
// error.
func Wrap(err error) *ServiceError {
	if err == nil {
		return nil
	}
	if se, ok := AsServiceError(err); ok {
		return OrInternal(se)
	}
	return Internal(err)
}
