package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost hashes the password, validates and constructs the post,
	// persists it, and notifies keyword subscribers after the write commits
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// GetPost retrieves a post by id; soft-deleted posts are not found
	GetPost(ctx context.Context, id int64) (*Post, error)

	// ListPosts pages through posts newest-first with optional
	// title/author substring filters
	ListPosts(ctx context.Context, req ListPostsRequest) (*ListPostsResult, error)

	// UpdatePost handles both content updates and soft deletion, selected
	// by the IsDeleted flag. Request-shape validation runs before any
	// lookup; the stored password hash gates the mutation.
	UpdatePost(ctx context.Context, req UpdatePostRequest) error
}

// Repository defines the data access interface for posts
type Repository interface {
	// FindOne retrieves a post by id, excluding soft-deleted posts.
	// Returns ErrPostNotFound when absent.
	FindOne(ctx context.Context, id int64) (*Post, error)

	// FindWithCursor pages posts by descending id. A cursor decodes to the
	// last-seen id; the page is posts with id strictly below it.
	FindWithCursor(ctx context.Context, req ListPostsRequest) (*ListPostsResult, error)

	// Save persists the post and exactly one snapshot of its new state in
	// a single atomic unit. Inserting assigns the returned post's ID.
	Save(ctx context.Context, post *Post) (*Post, error)
}

// PasswordHasher hashes plaintext passwords and verifies them against
// stored hashes. Injected so the core never depends on a hash algorithm.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hash string) bool
}

// CreatedNotifier receives post creation events after the write committed.
// Implementations must be best-effort: they never return an error and must
// not affect the triggering write.
type CreatedNotifier interface {
	NotifyPostCreated(ctx context.Context, event PostCreatedEvent)
}

// CreatePostRequest represents input for creating a new post
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Password string `json:"password"`
}

// UpdatePostRequest represents input for updating or soft-deleting a post.
// Nil Title/Content mean "keep the current value". IsDeleted present and
// true requests deletion; present and false is rejected (no restore).
type UpdatePostRequest struct {
	ID        int64
	Title     *string
	Content   *string
	Password  string
	IsDeleted *bool
}

// ListPostsRequest represents cursor-paged post listing parameters.
// Title and Author are case-insensitive substring filters when non-empty.
type ListPostsRequest struct {
	Cursor *string
	Limit  int
	Title  string
	Author string
}

// ListPostsResult is one page of posts. NextCursor is set only when
// HasNext is true and encodes the id of the last post returned.
type ListPostsResult struct {
	Posts      []*Post
	HasNext    bool
	NextCursor *string
}
