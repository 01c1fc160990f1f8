package subscriptions

import "context"

// Repository defines the data access interface for keyword subscriptions
type Repository interface {
	// FindMatching returns non-deleted subscriptions whose keyword occurs
	// in text, case-insensitively
	FindMatching(ctx context.Context, text string) ([]*Subscription, error)
}
