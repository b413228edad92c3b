package interval

import "github.com/loopforge/loopengine/pkg/loop"

// WithInterval returns a loop Option that installs a pacing action reactor.
// Only actions appended with the notify flag are paced.
//
// Usage:
//
//	h, err := loop.New(
//	    interval.WithInterval(interval.Config{Every: 5 * time.Second}),
//	)
//
// To read pacing stats afterwards, construct the pacer explicitly:
//
//	pacer := interval.New(interval.Config{Every: time.Second})
//	h, err := loop.New(loop.WithActionReactorFactory(pacer.Factory()))
func WithInterval(cfg Config) loop.Option {
	pacer := New(cfg)
	return loop.WithActionReactorFactory(pacer.Factory())
}
