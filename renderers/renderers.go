package renderers

import (
	"fmt"
	"strings"

	"github.com/kbukum/svcerrors/errors"
)

// Renderer names accepted by ByName.
const (
	NameText    = "text"
	NameJSON    = "json"
	NameProblem = "problem"
	NameYAML    = "yaml"
)

// Names lists every renderer name understood by ByName.
var Names = []string{NameText, NameJSON, NameProblem, NameYAML}

// ByName returns the renderer registered under name. An empty name selects
// the plain-text renderer.
func ByName(name string) (errors.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameText:
		return errors.PlainTextRenderer{}, nil
	case NameJSON:
		return errors.JSONRenderer{}, nil
	case NameProblem:
		return Problem{}, nil
	case NameYAML:
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("unknown renderer %q (expected one of %v)", name, Names)
	}
}
