package loop

import (
	"context"

	"github.com/loopforge/loopengine/pkg/log"
)

// Controller is the subset of Handle operations exposed to plugins. Plugins
// drive the running loop through it instead of holding the Handle itself.
type Controller interface {
	// Pause marks the pause intent for the next safe point.
	Pause() error

	// Resume schedules a resume and unblocks a paused circuit.
	Resume() error

	// Stop requests cancellation of the running circuit.
	Stop() error

	// State returns the current lifecycle state.
	State() State

	// Mode returns the current interrupt mode.
	Mode() Mode
}

// PluginConfig is passed to each plugin during initialization.
type PluginConfig struct {
	// Role is the handle's log tag.
	Role string

	// Logger is the handle's logger.
	Logger log.Logger

	// Controller drives the running loop.
	Controller Controller
}

// Plugin extends a Handle with background behavior tied to the run. Plugins
// are initialized in registration order when Start succeeds and shut down in
// reverse order when the run terminates.
type Plugin interface {
	// Name returns a unique identifier for logging.
	Name() string

	// Initialize starts the plugin. ctx is the context given to Start; a
	// plugin must also stop its background work when Shutdown is called,
	// since the run can end without ctx being canceled.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and releases its resources.
	Shutdown(ctx context.Context) error
}
