package comments

import (
	"time"
)

const (
	// DepthDefault is the depth of a top-level comment
	DepthDefault = 0

	// DepthMax caps nesting at one level: replies cannot have replies
	DepthMax = 1
)

// Comment represents a comment on a post. Comments nest one level deep:
// a depth-0 parent may carry depth-1 replies and nothing deeper.
// Comments are never updated or deleted once created.
type Comment struct {
	ID              int64     `json:"id" db:"id"`
	PostID          int64     `json:"postId" db:"post_id"`
	ParentCommentID *int64    `json:"parentCommentId,omitempty" db:"parent_comment_id"`
	Content         string    `json:"content" db:"content"`
	Depth           int       `json:"-" db:"depth"`
	Author          string    `json:"author" db:"author"`
	CreatedBy       string    `json:"-" db:"created_by"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// CommentProps carries the complete field set for constructing a Comment
type CommentProps struct {
	PostID          int64
	ParentCommentID *int64
	Content         string
	Depth           int
	Author          string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewComment constructs a Comment, enforcing the depth invariants
// atomically: depth never exceeds the max, and a parent reference exists
// exactly when the comment sits below the default depth.
func NewComment(props CommentProps, id int64) (*Comment, error) {
	if props.Depth > DepthMax {
		return nil, NewValidationError("Depth cannot be greater than max depth")
	}

	if props.ParentCommentID != nil && props.Depth == DepthDefault {
		return nil, NewValidationError("ParentCommentId should be null when depth is default")
	}

	if props.ParentCommentID == nil && props.Depth != DepthDefault {
		return nil, NewValidationError("ParentCommentId cannot be null when depth is not default")
	}

	return &Comment{
		ID:              id,
		PostID:          props.PostID,
		ParentCommentID: props.ParentCommentID,
		Content:         props.Content,
		Depth:           props.Depth,
		Author:          props.Author,
		CreatedBy:       props.CreatedBy,
		CreatedAt:       props.CreatedAt,
		UpdatedAt:       props.UpdatedAt,
	}, nil
}

// CreateComment constructs a brand-new Comment and its creation event
func CreateComment(postID int64, parentCommentID *int64, content string, depth int, author string) (*Comment, *CommentCreatedEvent, error) {
	now := time.Now().UTC()

	comment, err := NewComment(CommentProps{
		PostID:          postID,
		ParentCommentID: parentCommentID,
		Content:         content,
		Depth:           depth,
		Author:          author,
		CreatedBy:       author,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, 0)
	if err != nil {
		return nil, nil, err
	}

	event := &CommentCreatedEvent{
		CommentID: comment.ID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		Author:    comment.Author,
	}

	return comment, event, nil
}

// CanHaveChildComment reports whether this comment can accept a reply.
// Only top-level comments can.
func (c *Comment) CanHaveChildComment() bool {
	return c.Depth == DepthDefault
}

// CommentCreatedEvent is emitted when a comment is created, after the
// write has committed. Never persisted.
type CommentCreatedEvent struct {
	CommentID int64
	PostID    int64
	Content   string
	Author    string
}
