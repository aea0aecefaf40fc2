package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/svcerrors/errors"
)

// RespondWithError renders err through the process-wide registry.
// Errors that are not service errors are sent as INTERNAL_ERROR.
func RespondWithError(c *gin.Context, err error) {
	RespondWithErrorUsing(c, errors.DefaultRegistry(), err)
}

// RespondWithErrorUsing renders err through reg and writes the response.
func RespondWithErrorUsing(c *gin.Context, reg *errors.Registry, err error) {
	resp := render(reg, err)
	c.Data(resp.Status, resp.ContentType, []byte(resp.Body))
}

// AbortWithError is RespondWithErrorUsing followed by c.Abort.
func AbortWithError(c *gin.Context, reg *errors.Registry, err error) {
	RespondWithErrorUsing(c, reg, err)
	c.Abort()
}

// WriteError renders err through reg and writes it to a plain http.ResponseWriter.
func WriteError(w http.ResponseWriter, reg *errors.Registry, err error) {
	resp := render(reg, err)
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}

func render(reg *errors.Registry, err error) errors.Response {
	return errors.Wrap(err).RenderWith(reg)
}
