package middleware

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/svcerrors/errors"
)

// Middleware wraps an http.Handler with additional behavior.
// It works for every route on the server, Gin or any other mounted handler.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// GinWrap adapts a standard Middleware for use in a Gin middleware chain.
func GinWrap(mw Middleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			// request changes made by mw (headers, context) flow back to Gin
			c.Request = r
			c.Next()
		})
		mw(next).ServeHTTP(c.Writer, c.Request)
	}
}

// writeError renders se through reg and writes it to w.
func writeError(w http.ResponseWriter, reg *errors.Registry, se *errors.ServiceError) {
	resp := se.RenderWith(reg)
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}

// abortWithError renders se through reg and aborts the Gin chain.
func abortWithError(c *gin.Context, reg *errors.Registry, se *errors.ServiceError) {
	resp := se.RenderWith(reg)
	c.Data(resp.Status, resp.ContentType, []byte(resp.Body))
	c.Abort()
}
