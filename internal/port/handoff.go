package port

import "context"

// Launcher opens a URL in a new browsing context outside this process.
type Launcher interface {
	Open(ctx context.Context, url string) error
}

// Notifier shows a short message to the customer.
type Notifier interface {
	Notify(ctx context.Context, message string)
}
