package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"Bulletin/internal/core/subscriptions"
)

type postgresSubscriptionRepo struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new PostgreSQL keyword subscription repository
func NewSubscriptionRepository(db *sql.DB) subscriptions.Repository {
	return &postgresSubscriptionRepo{db: db}
}

// FindMatching returns non-deleted subscriptions whose keyword occurs in
// text. Rows are loaded and filtered in Go so both storage backends use
// the exact same case-insensitive matching.
func (r *postgresSubscriptionRepo) FindMatching(ctx context.Context, text string) ([]*subscriptions.Subscription, error) {
	query := `
		SELECT id, keyword, created_by, created_at, updated_at, is_deleted, deleted_at
		FROM keyword_subscriptions
		WHERE is_deleted = FALSE
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword subscriptions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("WARN: failed to close rows: %v", err)
		}
	}()

	var all []*subscriptions.Subscription
	for rows.Next() {
		var sub subscriptions.Subscription
		var deletedAt sql.NullTime

		if err := rows.Scan(
			&sub.ID, &sub.Keyword, &sub.CreatedBy,
			&sub.CreatedAt, &sub.UpdatedAt, &sub.IsDeleted, &deletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan keyword subscription: %w", err)
		}
		if deletedAt.Valid {
			sub.DeletedAt = &deletedAt.Time
		}
		all = append(all, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keyword subscription results: %w", err)
	}

	return subscriptions.MatchKeywords(text, all), nil
}
