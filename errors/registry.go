package errors

import (
	"sync/atomic"

	"github.com/kbukum/svcerrors/logger"
)

// Registry holds the default renderer used for errors that carry no renderer
// of their own. The default can be set once; later attempts are ignored.
// A Registry is safe for concurrent use.
type Registry struct {
	def atomic.Pointer[rendererSlot]
}

// rendererSlot boxes a Renderer so it can live in an atomic.Pointer.
type rendererSlot struct {
	r Renderer
}

// NewRegistry creates a registry with no default renderer.
func NewRegistry() *Registry {
	return &Registry{}
}

// SetDefault installs r as the default renderer. It returns false, leaving
// the registry unchanged, if r is nil or a default was already installed.
func (reg *Registry) SetDefault(r Renderer) bool {
	if r == nil {
		return false
	}
	if !reg.def.CompareAndSwap(nil, &rendererSlot{r: r}) {
		logger.Get(logger.ComponentErrors).Debug("default renderer already set; ignoring")
		return false
	}
	return true
}

// Default returns the installed default renderer, or nil.
func (reg *Registry) Default() Renderer {
	if slot := reg.def.Load(); slot != nil {
		return slot.r
	}
	return nil
}

// Resolve returns the renderer that would be used for e.
func (reg *Registry) Resolve(e *ServiceError) Renderer {
	if e != nil && e.renderer != nil {
		return e.renderer
	}
	if r := reg.Default(); r != nil {
		return r
	}
	return PlainTextRenderer{}
}

// Render renders e with its own renderer, else the registry default, else
// PlainTextRenderer. A nil error renders as a generic internal error.
func (reg *Registry) Render(e *ServiceError) Response {
	e = OrInternal(e)
	body, contentType := reg.Resolve(e).Render(e)
	return Response{
		Status:      StatusCode(e.httpStatus),
		ContentType: contentType,
		Body:        body,
	}
}

// reset clears the default renderer. Tests only.
func (reg *Registry) reset() {
	reg.def.Store(nil)
}

// --- process-wide registry ---

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// SetDefaultRenderer installs the process-wide default renderer. Call it once
// during startup, before requests are served; later calls are ignored.
func SetDefaultRenderer(r Renderer) bool {
	return defaultRegistry.SetDefault(r)
}

// Render renders e through the process-wide registry.
func (e *ServiceError) Render() Response {
	return defaultRegistry.Render(e)
}

// RenderWith renders e through reg.
func (e *ServiceError) RenderWith(reg *Registry) Response {
	if reg == nil {
		reg = defaultRegistry
	}
	return reg.Render(e)
}
