package renderers

import (
	"encoding/json"
	"strings"

	"github.com/kbukum/svcerrors/errors"
	"github.com/kbukum/svcerrors/logger"
)

// ContentTypeProblem is the RFC 7807 media type.
const ContentTypeProblem = "application/problem+json"

const problemFallbackBody = `{"type":"about:blank","title":"INTERNAL_ERROR","status":500,"detail":"error response could not be serialized"}`

// Problem renders errors as RFC 7807 problem details. The error name becomes
// the title, the formatted message the detail, and the code and parameters
// are carried as extension members.
type Problem struct {
	// TypeBase, when set, is joined with the kebab-cased error name to build
	// the problem type URI. Otherwise the type is "about:blank".
	TypeBase string
}

type problemDocument struct {
	Type       string                  `json:"type"`
	Title      string                  `json:"title"`
	Status     int                     `json:"status"`
	Detail     string                  `json:"detail"`
	Code       uint32                  `json:"code"`
	Parameters map[string]errors.Value `json:"parameters,omitempty"`
}

// Render implements errors.Renderer.
func (p Problem) Render(e *errors.ServiceError) (string, string) {
	e = errors.OrInternal(e)
	doc := problemDocument{
		Type:       p.typeURI(e.Name()),
		Title:      e.Name(),
		Status:     errors.StatusCode(e.HTTPStatus()),
		Detail:     e.Message(),
		Code:       e.Code(),
		Parameters: e.Params(),
	}
	body, err := json.Marshal(doc)
	if err != nil {
		logger.Get(logger.ComponentRenderers).Warn("failed to render problem details", logger.Fields(
			logger.FieldErrorCode, e.Code(),
			logger.FieldErrorName, e.Name(),
			logger.FieldError, err.Error(),
		))
		return problemFallbackBody, ContentTypeProblem
	}
	return string(body), ContentTypeProblem
}

func (p Problem) typeURI(name string) string {
	if p.TypeBase == "" || name == "" {
		return "about:blank"
	}
	slug := strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	if strings.HasSuffix(p.TypeBase, "/") {
		return p.TypeBase + slug
	}
	return p.TypeBase + "/" + slug
}
