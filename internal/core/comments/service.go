package comments

import (
	"context"
	"log/slog"

	"Bulletin/internal/core/pagination"
	"Bulletin/internal/core/posts"
)

// commentService implements the Service interface
type commentService struct {
	repo        Repository
	postService posts.Service
	notifier    CreatedNotifier
	logger      *slog.Logger
}

// NewCommentService creates a new comment service.
// The post service resolves the owning post for every operation; notifier
// may be nil when keyword notifications are not wired.
func NewCommentService(repo Repository, postService posts.Service, notifier CreatedNotifier, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		repo:        repo,
		postService: postService,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateComment creates a comment on a post. Replies derive their depth
// from the parent, which must be a top-level comment of the same post.
func (s *commentService) CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	post, err := s.postService.GetPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	depth := DepthDefault
	if req.ParentCommentID != nil {
		parent, err := s.findPostComment(ctx, post.ID, *req.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if !parent.CanHaveChildComment() {
			return nil, NewValidationError("Parent comment cannot have child comment")
		}

		depth = parent.Depth + 1
	}

	comment, event, err := CreateComment(post.ID, req.ParentCommentID, req.Content, depth, req.Author)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, comment)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		event.CommentID = saved.ID
		s.notifier.NotifyCommentCreated(ctx, *event)
	}

	return saved, nil
}

// ListComments pages a post's comments by top-level comment count and
// groups each page into parent threads with their replies attached.
//
// The full comment set is read per request and paged in memory. Depth is
// capped at one level and per-post volumes are modest, so this trades
// query complexity for a pure, testable paging step; the algorithm only
// depends on the ascending-id ordering, not on where the rows came from.
func (s *commentService) ListComments(ctx context.Context, req ListCommentsRequest) (*ListCommentsResult, error) {
	post, err := s.postService.GetPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.FindByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	var afterID *int64
	if req.Cursor != nil && *req.Cursor != "" {
		id, err := pagination.DecodeCursor(*req.Cursor)
		if err != nil {
			return nil, err
		}
		afterID = &id
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	page := paginateByParent(all, afterID, limit)

	return &ListCommentsResult{
		Threads:    assembleThreads(page.comments),
		HasNext:    page.hasNext,
		NextCursor: page.nextCursor,
	}, nil
}

// findPostComment locates a comment among the given post's comments.
// Scoping the lookup to the post means a parent id from another post is
// simply not found.
func (s *commentService) findPostComment(ctx context.Context, postID, commentID int64) (*Comment, error) {
	all, err := s.repo.FindByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	for _, c := range all {
		if c.ID == commentID {
			return c, nil
		}
	}

	return nil, ErrParentCommentNotFound
}
