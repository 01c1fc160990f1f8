package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"Bulletin/internal/core/comments"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// FindByPostID retrieves all comments of a post ordered by ascending id.
// The paging-by-parent step runs in the core over this full set.
func (r *postgresCommentRepo) FindByPostID(ctx context.Context, postID int64) ([]*comments.Comment, error) {
	query := `
		SELECT
			id, post_id, parent_comment_id, content, depth,
			author, created_by, created_at, updated_at
		FROM comments
		WHERE post_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("WARN: failed to close rows: %v", err)
		}
	}()

	var results []*comments.Comment
	for rows.Next() {
		var comment comments.Comment
		var parentID sql.NullInt64

		if err := rows.Scan(
			&comment.ID, &comment.PostID, &parentID, &comment.Content, &comment.Depth,
			&comment.Author, &comment.CreatedBy, &comment.CreatedAt, &comment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if parentID.Valid {
			comment.ParentCommentID = &parentID.Int64
		}
		results = append(results, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment results: %w", err)
	}

	return results, nil
}

// Save persists the comment. The update branch only rewrites content; no
// current operation reaches it.
func (r *postgresCommentRepo) Save(ctx context.Context, comment *comments.Comment) (*comments.Comment, error) {
	saved := *comment
	if comment.ID == 0 {
		query := `
			INSERT INTO comments (
				post_id, parent_comment_id, content, depth,
				author, created_by, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`
		err := r.db.QueryRowContext(ctx, query,
			comment.PostID, comment.ParentCommentID, comment.Content, comment.Depth,
			comment.Author, comment.CreatedBy, comment.CreatedAt, comment.UpdatedAt,
		).Scan(&saved.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert comment: %w", err)
		}
	} else {
		query := `UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`
		if _, err := r.db.ExecContext(ctx, query, comment.Content, comment.UpdatedAt, comment.ID); err != nil {
			return nil, fmt.Errorf("failed to update comment: %w", err)
		}
	}

	return &saved, nil
}
