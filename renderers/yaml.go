package renderers

import (
	"github.com/goccy/go-yaml"

	"github.com/kbukum/svcerrors/errors"
	"github.com/kbukum/svcerrors/logger"
)

// ContentTypeYAML is the media type produced by YAML.
const ContentTypeYAML = "application/yaml"

const yamlFallbackBody = "code: 0\nname: INTERNAL_ERROR\nmessage: error response could not be serialized\n"

// YAML renders the serialized form of an error as a YAML document.
type YAML struct{}

type yamlDocument struct {
	Code       uint32         `yaml:"code"`
	Name       string         `yaml:"name"`
	Message    string         `yaml:"message"`
	Parameters map[string]any `yaml:"parameters,omitempty"`
}

// Render implements errors.Renderer.
func (YAML) Render(e *errors.ServiceError) (string, string) {
	e = errors.OrInternal(e)
	doc := yamlDocument{
		Code:    e.Code(),
		Name:    e.Name(),
		Message: e.Message(),
	}
	if params := e.Params(); len(params) > 0 {
		doc.Parameters = make(map[string]any, len(params))
		for k, v := range params {
			doc.Parameters[k] = v.Interface()
		}
	}
	body, err := yaml.Marshal(doc)
	if err != nil {
		logger.Get(logger.ComponentRenderers).Warn("failed to render yaml error", logger.Fields(
			logger.FieldErrorCode, e.Code(),
			logger.FieldErrorName, e.Name(),
			logger.FieldError, err.Error(),
		))
		return yamlFallbackBody, ContentTypeYAML
	}
	return string(body), ContentTypeYAML
}
