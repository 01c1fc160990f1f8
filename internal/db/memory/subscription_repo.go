package memory

import (
	"context"
	"sync"
	"time"

	"Bulletin/internal/core/subscriptions"
)

// SubscriptionRepository is an in-memory subscriptions.Repository
type SubscriptionRepository struct {
	mu     sync.Mutex
	subs   []*subscriptions.Subscription
	nextID int64
}

// NewSubscriptionRepository creates an empty in-memory subscription repository
func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{nextID: 1}
}

// Add registers a keyword subscription. Used to seed test fixtures.
func (r *SubscriptionRepository) Add(keyword, createdBy string) *subscriptions.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	sub := &subscriptions.Subscription{
		ID:        r.nextID,
		Keyword:   keyword,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.subs = append(r.subs, sub)

	return sub
}

// FindMatching returns non-deleted subscriptions whose keyword occurs in
// text, case-insensitively
func (r *SubscriptionRepository) FindMatching(ctx context.Context, text string) ([]*subscriptions.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var active []*subscriptions.Subscription
	for _, sub := range r.subs {
		if sub.IsDeleted {
			continue
		}
		copied := *sub
		active = append(active, &copied)
	}

	return subscriptions.MatchKeywords(text, active), nil
}
