// Package renderers provides additional errors.Renderer implementations
// that services can install as the process-wide default or attach to a
// single error.
//
//	errors.SetDefaultRenderer(renderers.Problem{TypeBase: "https://example.com/errors/"})
//
// Renderers are looked up by name when the renderer is configured:
//
//	r, err := renderers.ByName(cfg.Errors.Renderer)
package renderers
