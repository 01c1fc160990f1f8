package subscriptions

import (
	"context"
	"fmt"
	"log/slog"

	"Bulletin/internal/core/comments"
	"Bulletin/internal/core/posts"
)

// Notifier matches creation events against keyword subscriptions and
// dispatches notifications. Delivery is currently a structured-log line.
//
// The notifier runs only after the triggering write has committed, and it
// is strictly best-effort: every failure is logged and swallowed, never
// surfaced to the write path.
type Notifier struct {
	repo   Repository
	logger *slog.Logger
}

var _ posts.CreatedNotifier = (*Notifier)(nil)
var _ comments.CreatedNotifier = (*Notifier)(nil)

// NewNotifier creates a new keyword notifier
func NewNotifier(repo Repository, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		repo:   repo,
		logger: logger,
	}
}

// NotifyPostCreated matches a new post's title and content against the
// keyword subscriptions
func (n *Notifier) NotifyPostCreated(ctx context.Context, event posts.PostCreatedEvent) {
	text := fmt.Sprintf("%s %s", event.Title, event.Content)

	matched, err := n.repo.FindMatching(ctx, text)
	if err != nil {
		n.logger.Error("failed to match keyword subscriptions for post", "postId", event.PostID, "error", err)
		return
	}

	for _, sub := range matched {
		// the author never notifies themselves
		if sub.CreatedBy == event.Author {
			continue
		}

		n.logger.Debug("keyword notification",
			"keyword", sub.Keyword,
			"subscriber", sub.CreatedBy,
			"postId", event.PostID,
			"title", event.Title,
			"author", event.Author,
		)
	}
}

// NotifyCommentCreated matches a new comment's content against the
// keyword subscriptions
func (n *Notifier) NotifyCommentCreated(ctx context.Context, event comments.CommentCreatedEvent) {
	matched, err := n.repo.FindMatching(ctx, event.Content)
	if err != nil {
		n.logger.Error("failed to match keyword subscriptions for comment", "commentId", event.CommentID, "postId", event.PostID, "error", err)
		return
	}

	for _, sub := range matched {
		if sub.CreatedBy == event.Author {
			continue
		}

		n.logger.Debug("keyword notification",
			"keyword", sub.Keyword,
			"subscriber", sub.CreatedBy,
			"commentId", event.CommentID,
			"postId", event.PostID,
			"author", event.Author,
		)
	}
}
