package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"Bulletin/internal/core/pagination"
	"Bulletin/internal/core/posts"
)

// PostRepository is an in-memory posts.Repository. It mirrors the
// PostgreSQL repository's semantics, including the snapshot-per-save rule,
// and backs the service tests.
type PostRepository struct {
	mu        sync.Mutex
	posts     map[int64]*posts.Post
	snapshots []posts.PostSnapshot
	nextID    int64
}

// NewPostRepository creates an empty in-memory post repository
func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int64]*posts.Post),
		nextID: 1,
	}
}

// FindOne retrieves a post by id, excluding soft-deleted posts
func (r *PostRepository) FindOne(ctx context.Context, id int64) (*posts.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok || post.IsDeleted {
		return nil, posts.ErrPostNotFound
	}

	copied := *post
	return &copied, nil
}

// FindWithCursor pages posts by descending id with optional
// case-insensitive title/author substring filters
func (r *PostRepository) FindWithCursor(ctx context.Context, req posts.ListPostsRequest) (*posts.ListPostsResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cursorID *int64
	if req.Cursor != nil && *req.Cursor != "" {
		id, err := pagination.DecodeCursor(*req.Cursor)
		if err != nil {
			return nil, err
		}
		cursorID = &id
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	var matched []*posts.Post
	for _, post := range r.posts {
		if post.IsDeleted {
			continue
		}
		if cursorID != nil && post.ID >= *cursorID {
			continue
		}
		if req.Title != "" && !strings.Contains(strings.ToLower(post.Title), strings.ToLower(req.Title)) {
			continue
		}
		if req.Author != "" && !strings.Contains(strings.ToLower(post.Author), strings.ToLower(req.Author)) {
			continue
		}
		copied := *post
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	hasNext := len(matched) > limit
	if hasNext {
		matched = matched[:limit]
	}

	var nextCursor *string
	if hasNext && len(matched) > 0 {
		cursor := pagination.EncodeCursor(matched[len(matched)-1].ID)
		nextCursor = &cursor
	}

	return &posts.ListPostsResult{
		Posts:      matched,
		HasNext:    hasNext,
		NextCursor: nextCursor,
	}, nil
}

// Save persists the post and records one snapshot of its new state
func (r *PostRepository) Save(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *post
	if saved.ID == 0 {
		saved.ID = r.nextID
		r.nextID++
	}

	stored := saved
	r.posts[saved.ID] = &stored
	r.snapshots = append(r.snapshots, saved.Snapshot(saved.CreatedBy))

	return &saved, nil
}

// Snapshots returns the accumulated snapshot history, oldest first
func (r *PostRepository) Snapshots() []posts.PostSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]posts.PostSnapshot(nil), r.snapshots...)
}
