package post

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"Bulletin/internal/core/posts"
)

// mockPostService implements posts.Service for testing
type mockPostService struct {
	createFunc func(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error)
	getFunc    func(ctx context.Context, id int64) (*posts.Post, error)
	listFunc   func(ctx context.Context, req posts.ListPostsRequest) (*posts.ListPostsResult, error)
	updateFunc func(ctx context.Context, req posts.UpdatePostRequest) error
}

func (m *mockPostService) CreatePost(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &posts.Post{
		ID:        1,
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		CreatedBy: req.Author,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}, nil
}

func (m *mockPostService) GetPost(ctx context.Context, id int64) (*posts.Post, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &posts.Post{ID: id, Title: "Title", Content: "Content", Author: "Alice"}, nil
}

func (m *mockPostService) ListPosts(ctx context.Context, req posts.ListPostsRequest) (*posts.ListPostsResult, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, req)
	}
	return &posts.ListPostsResult{}, nil
}

func (m *mockPostService) UpdatePost(ctx context.Context, req posts.UpdatePostRequest) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil
}

// withURLParam injects a chi route parameter into the request context
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, body *bytes.Buffer) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return resp
}

func TestCreateHandler(t *testing.T) {
	handler := NewCreateHandler(&mockPostService{})

	body, _ := json.Marshal(map[string]string{
		"title":    "Hello",
		"content":  "World",
		"author":   "Alice",
		"password": "hunter2",
	})
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.ID != 1 {
		t.Errorf("Expected id 1, got %d", resp.ID)
	}
}

func TestCreateHandler_ValidationError(t *testing.T) {
	handler := NewCreateHandler(&mockPostService{
		createFunc: func(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
			return nil, posts.NewValidationError("Title cannot be empty")
		},
	})

	body, _ := json.Marshal(map[string]string{"content": "World", "author": "Alice", "password": "pw"})
	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewBuffer(body))

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	resp := decodeError(t, w.Body)
	if resp.Message != "Title cannot be empty" {
		t.Errorf("Expected validation message verbatim, got %q", resp.Message)
	}
}

func TestCreateHandler_MalformedBody(t *testing.T) {
	handler := NewCreateHandler(&mockPostService{})

	req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestGetHandler(t *testing.T) {
	handler := NewGetHandler(&mockPostService{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/posts/42", nil), "id", "42")
	w := httptest.NewRecorder()
	handler.HandleGet(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.ID != 42 {
		t.Errorf("Expected id 42, got %d", resp.ID)
	}
	if resp.Title != "Title" {
		t.Errorf("Expected title to round-trip, got %q", resp.Title)
	}
}

func TestGetHandler_NotFound(t *testing.T) {
	handler := NewGetHandler(&mockPostService{
		getFunc: func(ctx context.Context, id int64) (*posts.Post, error) {
			return nil, posts.ErrPostNotFound
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/posts/42", nil), "id", "42")
	w := httptest.NewRecorder()
	handler.HandleGet(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	resp := decodeError(t, w.Body)
	if resp.Message != "Post not found" {
		t.Errorf("Expected 'Post not found', got %q", resp.Message)
	}
}

func TestGetHandler_InvalidID(t *testing.T) {
	handler := NewGetHandler(&mockPostService{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/posts/abc", nil), "id", "abc")
	w := httptest.NewRecorder()
	handler.HandleGet(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestListHandler_LimitClamping(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedLimit int
	}{
		{"default when absent", "", 10},
		{"passes through in range", "?limit=25", 25},
		{"clamps low to 1", "?limit=0", 1},
		{"clamps negative to 1", "?limit=-5", 1},
		{"clamps high to 50", "?limit=500", 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotLimit int
			handler := NewListHandler(&mockPostService{
				listFunc: func(ctx context.Context, req posts.ListPostsRequest) (*posts.ListPostsResult, error) {
					gotLimit = req.Limit
					return &posts.ListPostsResult{}, nil
				},
			})

			req := httptest.NewRequest(http.MethodGet, "/posts"+tc.query, nil)
			w := httptest.NewRecorder()
			handler.HandleList(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			if gotLimit != tc.expectedLimit {
				t.Errorf("Expected limit %d, got %d", tc.expectedLimit, gotLimit)
			}
		})
	}
}

func TestListHandler_EmptyResultHasEmptyArray(t *testing.T) {
	handler := NewListHandler(&mockPostService{})

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	w := httptest.NewRecorder()
	handler.HandleList(w, req)

	var resp struct {
		Posts   []json.RawMessage `json:"posts"`
		HasNext bool              `json:"hasNext"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Posts == nil {
		t.Errorf("Expected posts to be an empty array, not null")
	}
}

func TestListHandler_ForwardsFiltersAndCursor(t *testing.T) {
	var gotReq posts.ListPostsRequest
	handler := NewListHandler(&mockPostService{
		listFunc: func(ctx context.Context, req posts.ListPostsRequest) (*posts.ListPostsResult, error) {
			gotReq = req
			return &posts.ListPostsResult{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/posts?cursor=abc&title=go&author=alice", nil)
	w := httptest.NewRecorder()
	handler.HandleList(w, req)

	if gotReq.Cursor == nil || *gotReq.Cursor != "abc" {
		t.Errorf("Expected cursor 'abc', got %v", gotReq.Cursor)
	}
	if gotReq.Title != "go" || gotReq.Author != "alice" {
		t.Errorf("Expected filters to pass through, got title=%q author=%q", gotReq.Title, gotReq.Author)
	}
}

func TestUpdateHandler(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "success",
			serviceErr:     nil,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "restore attempt rejected",
			serviceErr:     posts.NewValidationError("Cannot restore deleted post"),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "InvalidRequest",
		},
		{
			name:           "wrong password",
			serviceErr:     posts.ErrInvalidPassword,
			expectedStatus: http.StatusForbidden,
			expectedError:  "InvalidPassword",
		},
		{
			name:           "missing post",
			serviceErr:     posts.ErrPostNotFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  "NotFound",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewUpdateHandler(&mockPostService{
				updateFunc: func(ctx context.Context, req posts.UpdatePostRequest) error {
					return tc.serviceErr
				},
			})

			body, _ := json.Marshal(map[string]string{"title": "New title", "password": "pw"})
			req := withURLParam(httptest.NewRequest(http.MethodPatch, "/posts/1", bytes.NewBuffer(body)), "id", "1")

			w := httptest.NewRecorder()
			handler.HandleUpdate(w, req)

			if w.Code != tc.expectedStatus {
				t.Fatalf("Expected status %d, got %d. Body: %s", tc.expectedStatus, w.Code, w.Body.String())
			}
			if tc.expectedError != "" {
				resp := decodeError(t, w.Body)
				if resp.Error != tc.expectedError {
					t.Errorf("Expected error %s, got %s", tc.expectedError, resp.Error)
				}
			}
		})
	}
}

func TestDeleteHandler_SetsDeletionFlag(t *testing.T) {
	var gotReq posts.UpdatePostRequest
	handler := NewDeleteHandler(&mockPostService{
		updateFunc: func(ctx context.Context, req posts.UpdatePostRequest) error {
			gotReq = req
			return nil
		},
	})

	body, _ := json.Marshal(map[string]string{"password": "pw"})
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/posts/9", bytes.NewBuffer(body)), "id", "9")

	w := httptest.NewRecorder()
	handler.HandleDelete(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}
	if gotReq.ID != 9 {
		t.Errorf("Expected id 9, got %d", gotReq.ID)
	}
	if gotReq.IsDeleted == nil || !*gotReq.IsDeleted {
		t.Errorf("Expected deletion flag to be set")
	}
	if gotReq.Title != nil || gotReq.Content != nil {
		t.Errorf("Expected no content fields on deletion")
	}
}
