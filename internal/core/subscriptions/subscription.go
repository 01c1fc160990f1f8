package subscriptions

import (
	"strings"
	"time"
)

// Subscription represents a standing interest in a keyword. New posts and
// comments are matched against non-deleted subscriptions after the write
// commits.
type Subscription struct {
	ID        int64      `json:"id" db:"id"`
	Keyword   string     `json:"keyword" db:"keyword"`
	CreatedBy string     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	IsDeleted bool       `json:"-" db:"is_deleted"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// Matches reports whether the subscription's keyword occurs in text,
// case-insensitively
func (s *Subscription) Matches(text string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(s.Keyword))
}

// MatchKeywords filters subscriptions down to those whose keyword is a
// case-insensitive substring of text. Repositories load candidate rows and
// share this filter so both backends match identically.
func MatchKeywords(text string, subs []*Subscription) []*Subscription {
	var matched []*Subscription
	for _, sub := range subs {
		if sub.Matches(text) {
			matched = append(matched, sub)
		}
	}
	return matched
}
