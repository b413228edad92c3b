package pausefile

import "github.com/loopforge/loopengine/pkg/loop"

// WithPauseFile returns a loop Option that enables pause file monitoring.
//
// Usage:
//
//	h, err := loop.New(
//	    pausefile.WithPauseFile(pausefile.Config{
//	        Path: "/var/run/worker.pause",
//	    }),
//	)
func WithPauseFile(cfg Config) loop.Option {
	plugin := New(cfg)
	return loop.WithPlugin(plugin)
}
