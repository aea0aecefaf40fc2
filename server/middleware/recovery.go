package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/kbukum/svcerrors/errors"
	"github.com/kbukum/svcerrors/logger"
	"github.com/kbukum/svcerrors/observability"
)

// Recovery returns middleware that turns a panic into an INTERNAL_ERROR
// rendered through reg. A nil reg uses the process-wide registry.
func Recovery(reg *errors.Registry) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				cause, ok := rec.(error)
				if !ok {
					cause = fmt.Errorf("panic: %v", rec)
				}
				logger.Get(logger.ComponentServer).Error("Panic recovered", logger.Fields(
					logger.FieldError, cause.Error(),
					"stack", string(debug.Stack()),
					"path", r.URL.Path,
					"method", r.Method,
					logger.FieldRequestID, r.Header.Get(HeaderRequestID),
				))
				se := errors.Internal(cause)
				observability.RecordErrorFromContext(r.Context(), se)
				writeError(w, reg, se)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
