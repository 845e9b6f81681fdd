package partner

import "log/slog"

// ChangeListener is invoked with a fresh snapshot after every state change.
type ChangeListener func(Snapshot)

// Option configures a Controller.
type Option func(*Controller)

// WithSubmitter sets the destination for validated proposals.
func WithSubmitter(submitter Submitter) Option {
	return func(c *Controller) {
		c.submitter = submitter
	}
}

// WithNotifier sets the user-facing feedback channel. When omitted,
// notifications are dropped.
func WithNotifier(notifier Notifier) Option {
	return func(c *Controller) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

// WithLogger attaches a structured logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithChangeListener registers a re-render hook.
func WithChangeListener(fn ChangeListener) Option {
	return func(c *Controller) {
		if fn != nil {
			c.listeners = append(c.listeners, fn)
		}
	}
}
