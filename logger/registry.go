package logger

import "sync"

// Component names the library's own packages log under.
const (
	ComponentErrors    = "errors"
	ComponentRenderers = "renderers"
	ComponentServer    = "server"
	ComponentConfig    = "config"
)

// Components lists every component name used by the library.
var Components = []string{ComponentErrors, ComponentRenderers, ComponentServer, ComponentConfig}

// named maps component names to registered loggers.
var named sync.Map

// Register stores a named logger. A nil logger removes the entry, so Get
// falls back to the global logger again.
func Register(name string, l *Logger) {
	if l == nil {
		named.Delete(name)
		return
	}
	named.Store(name, l)
}

// Get retrieves a named logger. Unregistered names get the current global
// logger tagged with the name, so SetGlobalLogger applies to them at once.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterComponents registers base, tagged with each component name. With
// no names every entry of Components is registered.
func RegisterComponents(base *Logger, names ...string) {
	if len(names) == 0 {
		names = Components
	}
	for _, name := range names {
		Register(name, base.WithComponent(name))
	}
}
