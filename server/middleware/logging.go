package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/kbukum/svcerrors/logger"
)

var quietPaths = []string{"/health", "/alive", "/ready", "/metrics"}

// RequestLogger returns middleware that logs every request with method,
// path, status code, response size and duration. Error responses also log
// their content type so the renderer in use is visible. Health-check paths
// are skipped.
func RequestLogger(log *logger.Logger) Middleware {
	if log == nil {
		log = logger.Get(logger.ComponentServer)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(quietPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			fields := logger.DurationFields(r.Method+" "+r.URL.Path, time.Since(start))
			fields[logger.FieldStatus] = sw.status
			fields["bytes"] = sw.size
			if id := r.Header.Get(HeaderRequestID); id != "" {
				fields[logger.FieldRequestID] = id
			}
			if sw.status >= 400 {
				fields[logger.FieldRenderer] = sw.Header().Get("Content-Type")
			}

			switch {
			case sw.status >= 500:
				log.Error("Request completed", fields)
			case sw.status >= 400:
				log.Warn("Request completed", fields)
			default:
				log.Debug("Request completed", fields)
			}
		})
	}
}
