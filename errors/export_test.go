package errors

// resetDefaultRegistry clears the process-wide default renderer and restores
// it when the test finishes.
func resetDefaultRegistry(t interface{ Cleanup(func()) }) {
	prev := defaultRegistry.Default()
	defaultRegistry.reset()
	t.Cleanup(func() {
		defaultRegistry.reset()
		if prev != nil {
			defaultRegistry.SetDefault(prev)
		}
	})
}
