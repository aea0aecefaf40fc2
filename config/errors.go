package config

import (
	"fmt"
	"strings"

	"github.com/kbukum/svcerrors/renderers"
)

// ErrorsConfig selects how service errors are rendered at the boundary.
type ErrorsConfig struct {
	// Renderer is the process-wide default renderer: text, json, problem or yaml.
	Renderer string `yaml:"renderer" mapstructure:"renderer"`
	// ProblemTypeBase is the type URI prefix used by the problem renderer.
	ProblemTypeBase string `yaml:"problem_type_base" mapstructure:"problem_type_base"`
}

// ApplyDefaults applies default values to the errors configuration. The
// renderer name is trimmed and lower-cased the way renderers.ByName reads it.
func (c *ErrorsConfig) ApplyDefaults() {
	c.Renderer = strings.ToLower(strings.TrimSpace(c.Renderer))
	if c.Renderer == "" {
		c.Renderer = renderers.NameText
	}
}

// Validate validates the errors configuration.
func (c *ErrorsConfig) Validate() error {
	if _, err := renderers.ByName(c.Renderer); err != nil {
		return fmt.Errorf("errors.renderer must be one of %v (got: %s)", renderers.Names, c.Renderer)
	}
	return nil
}
