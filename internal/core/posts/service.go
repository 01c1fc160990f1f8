package posts

import (
	"context"
	"fmt"
	"log/slog"
)

// postService implements the Service interface
type postService struct {
	repo     Repository
	hasher   PasswordHasher
	notifier CreatedNotifier
	logger   *slog.Logger
}

// NewPostService creates a new post service.
// notifier may be nil when keyword notifications are not wired.
func NewPostService(repo Repository, hasher PasswordHasher, notifier CreatedNotifier, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:     repo,
		hasher:   hasher,
		notifier: notifier,
		logger:   logger,
	}
}

// CreatePost hashes the password, constructs and persists the post, then
// notifies keyword subscribers. Validation failures surface before any
// write; hashing and repository failures propagate untouched.
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	post, event, err := CreatePost(req.Title, req.Content, req.Author, hashed)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, post)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		event.PostID = saved.ID
		s.notifier.NotifyPostCreated(ctx, *event)
	}

	return saved, nil
}

// GetPost retrieves a post by id; soft-deleted posts are reported as not found
func (s *postService) GetPost(ctx context.Context, id int64) (*Post, error) {
	return s.repo.FindOne(ctx, id)
}

// ListPosts pages posts newest-first through the repository cursor query
func (s *postService) ListPosts(ctx context.Context, req ListPostsRequest) (*ListPostsResult, error) {
	return s.repo.FindWithCursor(ctx, req)
}

// UpdatePost updates or soft-deletes a post behind the per-post password.
// The request shape is checked before the post is even looked up, so a
// malformed request never touches the repository.
func (s *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) error {
	if err := validateUpdateRequest(req); err != nil {
		return err
	}

	post, err := s.repo.FindOne(ctx, req.ID)
	if err != nil {
		return err
	}

	if !s.hasher.Compare(req.Password, post.Password) {
		return ErrInvalidPassword
	}

	var changed *Post
	if req.IsDeleted != nil && *req.IsDeleted {
		changed, err = post.Delete()
	} else {
		changed, err = post.Update(req.Title, req.Content)
	}
	if err != nil {
		return err
	}

	if _, err := s.repo.Save(ctx, changed); err != nil {
		return err
	}

	return nil
}

func validateUpdateRequest(req UpdatePostRequest) error {
	if req.IsDeleted != nil && !*req.IsDeleted {
		return NewValidationError("Cannot restore deleted post")
	}

	if req.IsDeleted != nil && (req.Title != nil || req.Content != nil) {
		return NewValidationError("Cannot update title or content when deleting post")
	}

	return nil
}
