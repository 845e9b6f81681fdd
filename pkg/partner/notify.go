package partner

import "context"

// Kind classifies a user-facing notification.
type Kind string

const (
	KindValidation Kind = "validation"
	KindSuccess    Kind = "success"
	KindFailure    Kind = "failure"
)

const (
	MessageValidation = "Please fill in all required fields: Name, Email, Company, and select at least one Industry."
	MessageSuccess    = "Thank you for your interest in partnering with us! We will review your proposal and be in touch soon."
	MessageFailure    = "Failed to submit proposal. Please try again later."
)

// Notifier surfaces submission feedback to the user. The presentation layer
// decides whether that is a modal, a status line, or inline text.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, kind Kind, message string)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, kind Kind, message string) {
	f(ctx, kind, message)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Kind, string) {}
