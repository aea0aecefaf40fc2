package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/svcerrors/errors"
	"github.com/kbukum/svcerrors/logger"
	"github.com/kbukum/svcerrors/observability"
)

// ErrorHandler renders the last error a handler attached with c.Error when
// nothing has been written yet. Errors that are not service errors render as
// INTERNAL_ERROR. The request id, when present, is added as the request_id
// parameter of the rendered error, and the error is recorded on the active
// trace span.
func ErrorHandler(reg *errors.Registry) gin.HandlerFunc {
	if reg == nil {
		reg = errors.DefaultRegistry()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		se := errors.Wrap(c.Errors.Last().Err)
		if id := c.GetHeader(HeaderRequestID); id != "" {
			// the clone must not touch a shared error value, and Clone drops
			// the renderer, so carry over the one the original resolves to
			se = se.Clone().
				Parameter(logger.FieldRequestID, id).
				WithRenderer(reg.Resolve(se))
		}

		fields := logger.Fields(
			logger.FieldErrorCode, se.Code(),
			logger.FieldErrorName, se.Name(),
			logger.FieldHTTPStatus, errors.StatusCode(se.HTTPStatus()),
			"path", c.Request.URL.Path,
		)
		if cause := se.Unwrap(); cause != nil {
			fields[logger.FieldError] = cause.Error()
		}
		log := logger.Get(logger.ComponentServer)
		if errors.StatusCode(se.HTTPStatus()) >= 500 {
			log.Error("Request failed", fields)
		} else {
			log.Debug("Request rejected", fields)
		}

		observability.RecordErrorFromContext(c.Request.Context(), se)
		abortWithError(c, reg, se)
	}
}
