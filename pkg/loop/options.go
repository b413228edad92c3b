package loop

import "github.com/loopforge/loopengine/pkg/log"

// Option configures optional behavior of a Handle.
type Option func(*options)

// options holds the optional configuration for a Handle.
type options struct {
	role                 string
	logger               log.Logger
	plugins              []Plugin
	eventReactorFactory  ReactorFactory
	actionReactorFactory ReactorFactory
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		role:   "loop",
		logger: log.NewNoopLogger(),
	}
}

// WithRole sets the role tag attached to every log line of this handle.
// If not provided, "loop" is used.
func WithRole(role string) Option {
	return func(o *options) {
		o.role = role
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPlugin registers a plugin to be initialized when the loop starts.
// Plugins are initialized in registration order and shut down in reverse
// order. For built-in plugins, use their package options such as
// pausefile.WithPauseFile() or interval.WithInterval().
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithEventReactorFactory installs the factory that builds the event reactor
// and its context object at the start of each run.
func WithEventReactorFactory(factory ReactorFactory) Option {
	return func(o *options) {
		o.eventReactorFactory = factory
	}
}

// WithActionReactorFactory installs the factory that builds the action
// reactor and its context object before the circuit starts.
func WithActionReactorFactory(factory ReactorFactory) Option {
	return func(o *options) {
		o.actionReactorFactory = factory
	}
}
