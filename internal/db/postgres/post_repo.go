package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"Bulletin/internal/core/pagination"
	"Bulletin/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// FindOne retrieves a post by id, excluding soft-deleted posts
func (r *postgresPostRepo) FindOne(ctx context.Context, id int64) (*posts.Post, error) {
	query := `
		SELECT
			id, title, content, author, created_by, password,
			created_at, updated_at, is_deleted, deleted_at
		FROM posts
		WHERE id = $1 AND is_deleted = FALSE
	`

	var post posts.Post
	var deletedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.Author, &post.CreatedBy, &post.Password,
		&post.CreatedAt, &post.UpdatedAt, &post.IsDeleted, &deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	if deletedAt.Valid {
		post.DeletedAt = &deletedAt.Time
	}

	return &post, nil
}

// FindWithCursor pages posts by descending id with optional
// case-insensitive title/author substring filters.
// Fetches limit+1 rows to detect whether another page exists.
func (r *postgresPostRepo) FindWithCursor(ctx context.Context, req posts.ListPostsRequest) (*posts.ListPostsResult, error) {
	whereConditions := []string{"is_deleted = FALSE"}
	args := []interface{}{}
	paramIndex := 1

	if req.Cursor != nil && *req.Cursor != "" {
		cursorID, err := pagination.DecodeCursor(*req.Cursor)
		if err != nil {
			return nil, err
		}
		whereConditions = append(whereConditions, fmt.Sprintf("id < $%d", paramIndex))
		args = append(args, cursorID)
		paramIndex++
	}

	if req.Title != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("title ILIKE $%d", paramIndex))
		args = append(args, "%"+req.Title+"%")
		paramIndex++
	}

	if req.Author != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("author ILIKE $%d", paramIndex))
		args = append(args, "%"+req.Author+"%")
		paramIndex++
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT
			id, title, content, author, created_by, password,
			created_at, updated_at, is_deleted, deleted_at
		FROM posts
		WHERE %s
		ORDER BY id DESC
		LIMIT $%d
	`, strings.Join(whereConditions, " AND "), paramIndex)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("WARN: failed to close rows: %v", err)
		}
	}()

	var results []*posts.Post
	for rows.Next() {
		var post posts.Post
		var deletedAt sql.NullTime

		if err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.Author, &post.CreatedBy, &post.Password,
			&post.CreatedAt, &post.UpdatedAt, &post.IsDeleted, &deletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		if deletedAt.Valid {
			post.DeletedAt = &deletedAt.Time
		}
		results = append(results, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post results: %w", err)
	}

	hasNext := len(results) > limit
	if hasNext {
		results = results[:limit]
	}

	var nextCursor *string
	if hasNext && len(results) > 0 {
		cursor := pagination.EncodeCursor(results[len(results)-1].ID)
		nextCursor = &cursor
	}

	return &posts.ListPostsResult{
		Posts:      results,
		HasNext:    hasNext,
		NextCursor: nextCursor,
	}, nil
}

// Save persists the post and one snapshot of its new state in a single
// transaction. If the snapshot insert fails, the entity write rolls back
// with it.
func (r *postgresPostRepo) Save(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Printf("WARN: failed to rollback transaction: %v", err)
		}
	}()

	saved := *post
	if post.ID == 0 {
		query := `
			INSERT INTO posts (
				title, content, author, created_by, password,
				created_at, updated_at, is_deleted, deleted_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		err = tx.QueryRowContext(ctx, query,
			post.Title, post.Content, post.Author, post.CreatedBy, post.Password,
			post.CreatedAt, post.UpdatedAt, post.IsDeleted, post.DeletedAt,
		).Scan(&saved.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert post: %w", err)
		}
	} else {
		query := `
			UPDATE posts SET
				title = $1, content = $2, author = $3, password = $4,
				updated_at = $5, is_deleted = $6, deleted_at = $7
			WHERE id = $8
		`
		if _, err := tx.ExecContext(ctx, query,
			post.Title, post.Content, post.Author, post.Password,
			post.UpdatedAt, post.IsDeleted, post.DeletedAt, post.ID,
		); err != nil {
			return nil, fmt.Errorf("failed to update post: %w", err)
		}
	}

	// snapshot attribution reuses the post's original creator: with no
	// user accounts there is no separate updater identity
	snapshot := saved.Snapshot(saved.CreatedBy)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO post_snapshots (post_id, title, content, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, snapshot.PostID, snapshot.Title, snapshot.Content, snapshot.CreatedBy, snapshot.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert post snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit post save: %w", err)
	}

	return &saved, nil
}
