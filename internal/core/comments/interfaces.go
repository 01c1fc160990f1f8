package comments

import "context"

// Service defines the business logic interface for comments
type Service interface {
	// CreateComment creates a top-level comment or a reply. The post must
	// exist; a reply's parent must be one of that post's top-level
	// comments.
	CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error)

	// ListComments pages a post's comments by parent-comment count,
	// returning each page parent with all of its replies attached
	ListComments(ctx context.Context, req ListCommentsRequest) (*ListCommentsResult, error)
}

// Repository defines the data access interface for comments
type Repository interface {
	// FindByPostID retrieves all comments of a post ordered by ascending id
	FindByPostID(ctx context.Context, postID int64) ([]*Comment, error)

	// Save persists the comment. Inserting assigns the returned comment's
	// ID. The update branch exists for completeness; no operation uses it.
	Save(ctx context.Context, comment *Comment) (*Comment, error)
}

// CreatedNotifier receives comment creation events after the write
// committed. Implementations are best-effort and never return an error.
type CreatedNotifier interface {
	NotifyCommentCreated(ctx context.Context, event CommentCreatedEvent)
}

// CreateCommentRequest represents input for creating a comment.
// A nil ParentCommentID creates a top-level comment.
type CreateCommentRequest struct {
	PostID          int64
	ParentCommentID *int64
	Content         string
	Author          string
}

// ListCommentsRequest represents cursor-paged comment listing parameters
type ListCommentsRequest struct {
	PostID int64
	Cursor *string
	Limit  int
}

// ListCommentsResult is one page of comment threads. The limit counts only
// top-level comments; replies ride along with their parent.
type ListCommentsResult struct {
	Threads    []*CommentThread
	HasNext    bool
	NextCursor *string
}

// CommentThread is a top-level comment with its direct replies in
// ascending id order. Replies is empty, never nil, for childless parents.
type CommentThread struct {
	Comment *Comment
	Replies []*Comment
}
