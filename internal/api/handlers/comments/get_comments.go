package comments

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"Bulletin/internal/core/comments"
)

// GetCommentsHandler handles cursor-paged comment listing
type GetCommentsHandler struct {
	service comments.Service
}

// NewGetCommentsHandler creates a new handler for listing comments
func NewGetCommentsHandler(service comments.Service) *GetCommentsHandler {
	return &GetCommentsHandler{service: service}
}

type commentView struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type threadView struct {
	commentView
	Replies []commentView `json:"replies"`
}

// HandleGetComments handles GET /posts/{postId}/comments?cursor={str}&limit={n}
// limit counts top-level comments only and is clamped to [1,50], default
// 10; replies always ride along with their parent.
func (h *GetCommentsHandler) HandleGetComments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id: must be an integer")
		return
	}

	query := r.URL.Query()

	limit := 10
	if limitStr := query.Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid limit parameter: must be an integer")
			return
		}
		if l < 1 {
			limit = 1
		} else if l > 50 {
			limit = 50
		} else {
			limit = l
		}
	}

	req := comments.ListCommentsRequest{
		PostID: postID,
		Limit:  limit,
	}
	if cursor := query.Get("cursor"); cursor != "" {
		req.Cursor = &cursor
	}

	result, err := h.service.ListComments(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	threads := make([]threadView, 0, len(result.Threads))
	for _, thread := range result.Threads {
		view := threadView{
			commentView: toCommentView(thread.Comment),
			Replies:     make([]commentView, 0, len(thread.Replies)),
		}
		for _, reply := range thread.Replies {
			view.Replies = append(view.Replies, toCommentView(reply))
		}
		threads = append(threads, view)
	}

	response := map[string]interface{}{
		"comments": threads,
		"hasNext":  result.HasNext,
	}
	if result.NextCursor != nil {
		response["nextCursor"] = *result.NextCursor
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode comment list response: %v", err)
	}
}

func toCommentView(c *comments.Comment) commentView {
	return commentView{
		ID:        c.ID,
		Content:   c.Content,
		Author:    c.Author,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
