package memory

import (
	"context"
	"sort"
	"sync"

	"Bulletin/internal/core/comments"
)

// CommentRepository is an in-memory comments.Repository
type CommentRepository struct {
	mu       sync.Mutex
	comments map[int64]*comments.Comment
	nextID   int64
}

// NewCommentRepository creates an empty in-memory comment repository
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int64]*comments.Comment),
		nextID:   1,
	}
}

// FindByPostID retrieves all comments of a post ordered by ascending id
func (r *CommentRepository) FindByPostID(ctx context.Context, postID int64) ([]*comments.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*comments.Comment
	for _, comment := range r.comments {
		if comment.PostID != postID {
			continue
		}
		copied := *comment
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return matched, nil
}

// Save persists the comment, assigning an id on insert
func (r *CommentRepository) Save(ctx context.Context, comment *comments.Comment) (*comments.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *comment
	if saved.ID == 0 {
		saved.ID = r.nextID
		r.nextID++
	}

	stored := saved
	r.comments[saved.ID] = &stored

	return &saved, nil
}
