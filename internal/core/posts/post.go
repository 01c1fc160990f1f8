package posts

import (
	"strings"
	"time"
)

// Post represents an anonymous forum post.
// Ownership is proven by a per-post password, hashed at rest; there are no
// user accounts. Deletion is a soft state transition, never a row removal.
type Post struct {
	ID        int64      `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	Author    string     `json:"author" db:"author"`
	CreatedBy string     `json:"-" db:"created_by"`
	Password  string     `json:"-" db:"password"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	IsDeleted bool       `json:"-" db:"is_deleted"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// PostProps carries the complete field set for constructing a Post.
// Updates go through the same construction path as creation: the whole
// object is rebuilt and re-validated, never patched in place.
type PostProps struct {
	Title     string
	Content   string
	Author    string
	CreatedBy string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
	IsDeleted bool
	DeletedAt *time.Time
}

// NewPost constructs a Post from a full property set, enforcing the entity
// invariants. id is zero for a post that has not been persisted yet.
// Checks run in a fixed order; the first failing rule determines the error.
func NewPost(props PostProps, id int64) (*Post, error) {
	if strings.TrimSpace(props.Title) == "" {
		return nil, NewValidationError("Title cannot be empty")
	}

	if strings.TrimSpace(props.Content) == "" {
		return nil, NewValidationError("Content cannot be empty")
	}

	if strings.TrimSpace(props.Author) == "" {
		return nil, NewValidationError("CreatedBy cannot be empty")
	}

	return &Post{
		ID:        id,
		Title:     props.Title,
		Content:   props.Content,
		Author:    props.Author,
		CreatedBy: props.CreatedBy,
		Password:  props.Password,
		CreatedAt: props.CreatedAt,
		UpdatedAt: props.UpdatedAt,
		IsDeleted: props.IsDeleted,
		DeletedAt: props.DeletedAt,
	}, nil
}

// CreatePost constructs a brand-new Post and its creation event.
// hashedPassword must already be hashed; the entity never sees plaintext.
// CreatedBy doubles as the author since there are no user accounts.
func CreatePost(title, content, author, hashedPassword string) (*Post, *PostCreatedEvent, error) {
	now := time.Now().UTC()

	post, err := NewPost(PostProps{
		Title:     title,
		Content:   content,
		Author:    author,
		CreatedBy: author,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
		IsDeleted: false,
		DeletedAt: nil,
	}, 0)
	if err != nil {
		return nil, nil, err
	}

	event := &PostCreatedEvent{
		PostID:  post.ID,
		Title:   post.Title,
		Content: post.Content,
		Author:  post.Author,
	}

	return post, event, nil
}

// Update reconstructs the post with merged fields. Nil means "keep the
// current value". All invariants are re-checked.
func (p *Post) Update(title, content *string) (*Post, error) {
	props := p.props()
	if title != nil {
		props.Title = *title
	}
	if content != nil {
		props.Content = *content
	}
	props.UpdatedAt = time.Now().UTC()

	return NewPost(props, p.ID)
}

// Delete transitions the post into the soft-deleted state.
func (p *Post) Delete() (*Post, error) {
	now := time.Now().UTC()

	props := p.props()
	props.IsDeleted = true
	props.DeletedAt = &now
	props.UpdatedAt = now

	return NewPost(props, p.ID)
}

// Snapshot derives the immutable history record for the post's current
// state, attributed to the actor that triggered the write.
func (p *Post) Snapshot(createdBy string) PostSnapshot {
	return PostSnapshot{
		PostID:    p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
}

func (p *Post) props() PostProps {
	return PostProps{
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		CreatedBy: p.CreatedBy,
		Password:  p.Password,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		IsDeleted: p.IsDeleted,
		DeletedAt: p.DeletedAt,
	}
}

// PostSnapshot captures a post's state at the moment of a write.
// Snapshots are append-only history: never mutated, never deleted.
// Equality is structural; there is no snapshot identity.
type PostSnapshot struct {
	PostID    int64     `json:"postId" db:"post_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedBy string    `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PostCreatedEvent is emitted when a post is created, after the write has
// committed. It exists to decouple keyword-subscription matching from the
// write path and is never persisted.
type PostCreatedEvent struct {
	PostID  int64
	Title   string
	Content string
	Author  string
}
