package comments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	commentsCore "Bulletin/internal/core/comments"
	"Bulletin/internal/core/posts"
)

// mockCommentService implements comments.Service for testing
type mockCommentService struct {
	createFunc func(ctx context.Context, req commentsCore.CreateCommentRequest) (*commentsCore.Comment, error)
	listFunc   func(ctx context.Context, req commentsCore.ListCommentsRequest) (*commentsCore.ListCommentsResult, error)
}

func (m *mockCommentService) CreateComment(ctx context.Context, req commentsCore.CreateCommentRequest) (*commentsCore.Comment, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &commentsCore.Comment{
		ID:              7,
		PostID:          req.PostID,
		ParentCommentID: req.ParentCommentID,
		Content:         req.Content,
		Author:          req.Author,
	}, nil
}

func (m *mockCommentService) ListComments(ctx context.Context, req commentsCore.ListCommentsRequest) (*commentsCore.ListCommentsResult, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, req)
	}
	return &commentsCore.ListCommentsResult{Threads: []*commentsCore.CommentThread{}}, nil
}

func withPostIDParam(r *http.Request, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("postId", value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateCommentHandler(t *testing.T) {
	var gotReq commentsCore.CreateCommentRequest
	handler := NewCreateCommentHandler(&mockCommentService{
		createFunc: func(ctx context.Context, req commentsCore.CreateCommentRequest) (*commentsCore.Comment, error) {
			gotReq = req
			return &commentsCore.Comment{ID: 7, PostID: req.PostID}, nil
		},
	})

	body, _ := json.Marshal(map[string]interface{}{
		"parentCommentId": 3,
		"content":         "a reply",
		"author":          "Eve",
	})
	req := withPostIDParam(httptest.NewRequest(http.MethodPost, "/posts/1/comments", bytes.NewBuffer(body)), "1")

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}
	if gotReq.PostID != 1 {
		t.Errorf("Expected post id 1, got %d", gotReq.PostID)
	}
	if gotReq.ParentCommentID == nil || *gotReq.ParentCommentID != 3 {
		t.Errorf("Expected parent comment id 3, got %v", gotReq.ParentCommentID)
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.ID != 7 {
		t.Errorf("Expected id 7, got %d", resp.ID)
	}
}

func TestCreateCommentHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "post missing",
			serviceErr:     posts.ErrPostNotFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  "NotFound",
		},
		{
			name:           "parent missing",
			serviceErr:     commentsCore.ErrParentCommentNotFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  "NotFound",
		},
		{
			name:           "parent already a reply",
			serviceErr:     commentsCore.NewValidationError("Parent comment cannot have child comment"),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "InvalidRequest",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCreateCommentHandler(&mockCommentService{
				createFunc: func(ctx context.Context, req commentsCore.CreateCommentRequest) (*commentsCore.Comment, error) {
					return nil, tc.serviceErr
				},
			})

			body, _ := json.Marshal(map[string]string{"content": "hi", "author": "Eve"})
			req := withPostIDParam(httptest.NewRequest(http.MethodPost, "/posts/1/comments", bytes.NewBuffer(body)), "1")

			w := httptest.NewRecorder()
			handler.HandleCreate(w, req)

			if w.Code != tc.expectedStatus {
				t.Fatalf("Expected status %d, got %d. Body: %s", tc.expectedStatus, w.Code, w.Body.String())
			}

			var resp errorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tc.expectedError {
				t.Errorf("Expected error %s, got %s", tc.expectedError, resp.Error)
			}
		})
	}
}

func TestCreateCommentHandler_InvalidPostID(t *testing.T) {
	handler := NewCreateCommentHandler(&mockCommentService{})

	body, _ := json.Marshal(map[string]string{"content": "hi", "author": "Eve"})
	req := withPostIDParam(httptest.NewRequest(http.MethodPost, "/posts/abc/comments", bytes.NewBuffer(body)), "abc")

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestGetCommentsHandler_RendersThreads(t *testing.T) {
	parentID := int64(1)
	cursor := "next-page"
	handler := NewGetCommentsHandler(&mockCommentService{
		listFunc: func(ctx context.Context, req commentsCore.ListCommentsRequest) (*commentsCore.ListCommentsResult, error) {
			return &commentsCore.ListCommentsResult{
				Threads: []*commentsCore.CommentThread{
					{
						Comment: &commentsCore.Comment{ID: 1, Content: "parent", Author: "Bob"},
						Replies: []*commentsCore.Comment{
							{ID: 2, ParentCommentID: &parentID, Content: "reply", Author: "Eve"},
						},
					},
				},
				HasNext:    true,
				NextCursor: &cursor,
			}, nil
		},
	})

	req := withPostIDParam(httptest.NewRequest(http.MethodGet, "/posts/1/comments", nil), "1")
	w := httptest.NewRecorder()
	handler.HandleGetComments(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Comments []struct {
			ID      int64 `json:"id"`
			Replies []struct {
				ID int64 `json:"id"`
			} `json:"replies"`
		} `json:"comments"`
		HasNext    bool   `json:"hasNext"`
		NextCursor string `json:"nextCursor"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Comments) != 1 {
		t.Fatalf("Expected 1 thread, got %d", len(resp.Comments))
	}
	if len(resp.Comments[0].Replies) != 1 || resp.Comments[0].Replies[0].ID != 2 {
		t.Errorf("Expected reply 2 nested under parent, got %+v", resp.Comments[0].Replies)
	}
	if !resp.HasNext || resp.NextCursor != "next-page" {
		t.Errorf("Expected pagination fields to pass through, got hasNext=%v nextCursor=%q", resp.HasNext, resp.NextCursor)
	}
}

func TestGetCommentsHandler_LimitClamping(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedLimit int
	}{
		{"default when absent", "", 10},
		{"clamps low to 1", "?limit=0", 1},
		{"clamps high to 50", "?limit=80", 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotLimit int
			handler := NewGetCommentsHandler(&mockCommentService{
				listFunc: func(ctx context.Context, req commentsCore.ListCommentsRequest) (*commentsCore.ListCommentsResult, error) {
					gotLimit = req.Limit
					return &commentsCore.ListCommentsResult{}, nil
				},
			})

			req := withPostIDParam(httptest.NewRequest(http.MethodGet, "/posts/1/comments"+tc.query, nil), "1")
			w := httptest.NewRecorder()
			handler.HandleGetComments(w, req)

			if gotLimit != tc.expectedLimit {
				t.Errorf("Expected limit %d, got %d", tc.expectedLimit, gotLimit)
			}
		})
	}
}

func TestGetCommentsHandler_PostMissing(t *testing.T) {
	handler := NewGetCommentsHandler(&mockCommentService{
		listFunc: func(ctx context.Context, req commentsCore.ListCommentsRequest) (*commentsCore.ListCommentsResult, error) {
			return nil, posts.ErrPostNotFound
		},
	})

	req := withPostIDParam(httptest.NewRequest(http.MethodGet, "/posts/404/comments", nil), "404")
	w := httptest.NewRecorder()
	handler.HandleGetComments(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
}
