package bootstrap

import (
	"fmt"
	"io"
	"time"
)

// InfrastructureInfo describes a started infrastructure piece such as the
// HTTP server or a telemetry exporter.
type InfrastructureInfo struct {
	Name    string
	Type    string // e.g. "server", "tracer", "meter"
	Details string
	Port    int
	Healthy bool
}

// RouteInfo represents a registered HTTP route.
type RouteInfo struct {
	Method  string
	Path    string
	Handler string
}

// Summary tracks and displays the application bootstrap process.
type Summary struct {
	serviceName       string
	version           string
	startupDuration   time.Duration
	renderer          string
	rendererInstalled bool
	infrastructure    []InfrastructureInfo
	routes            []RouteInfo
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName:    serviceName,
		version:        version,
		infrastructure: make([]InfrastructureInfo, 0),
		routes:         make([]RouteInfo, 0),
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// SetRenderer records the configured default renderer and whether it was
// the one installed.
func (s *Summary) SetRenderer(name string, installed bool) {
	s.renderer = name
	s.rendererInstalled = installed
}

// TrackInfrastructure adds an infrastructure component with detailed metadata.
func (s *Summary) TrackInfrastructure(name, componentType, details string, port int, healthy bool) {
	s.infrastructure = append(s.infrastructure, InfrastructureInfo{
		Name:    name,
		Type:    componentType,
		Details: details,
		Port:    port,
		Healthy: healthy,
	})
}

// TrackRoute records an HTTP route.
func (s *Summary) TrackRoute(method, path, handler string) {
	s.routes = append(s.routes, RouteInfo{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
}

// DisplaySummary writes the bootstrap summary to w.
func (s *Summary) DisplaySummary(w io.Writer) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "🚀 %s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	fmt.Fprintf(w, "🧾 Errors\n")
	state := "installed"
	if !s.rendererInstalled {
		state = "kept existing default"
	}
	fmt.Fprintf(w, "   └── renderer: %s (%s)\n\n", s.renderer, state)

	if len(s.infrastructure) > 0 {
		fmt.Fprintf(w, "📊 Infrastructure\n")
		for i, inf := range s.infrastructure {
			prefix := "├──"
			if i == len(s.infrastructure)-1 {
				prefix = "└──"
			}
			icon := "✅"
			if !inf.Healthy {
				icon = "❌"
			}
			details := inf.Details
			if inf.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, inf.Port)
			}
			fmt.Fprintf(w, "   %s %s %s [%s]: %s\n", prefix, icon, inf.Name, inf.Type, details)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(s.routes) > 0 {
		fmt.Fprintf(w, "🌐 Routes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			prefix := "├──"
			if i == len(s.routes)-1 {
				prefix = "└──"
			}
			fmt.Fprintf(w, "   %s %-7s %s → %s\n", prefix, r.Method, r.Path, r.Handler)
		}
		fmt.Fprintf(w, "\n")
	}
}
