package comments

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Bulletin/internal/core/comments"
)

// CreateCommentHandler handles comment creation requests
type CreateCommentHandler struct {
	service comments.Service
}

// NewCreateCommentHandler creates a new handler for creating comments
func NewCreateCommentHandler(service comments.Service) *CreateCommentHandler {
	return &CreateCommentHandler{service: service}
}

type createCommentInput struct {
	ParentCommentID *int64 `json:"parentCommentId,omitempty"`
	Content         string `json:"content"`
	Author          string `json:"author"`
}

// HandleCreate handles POST /posts/{postId}/comments
// A request with parentCommentId creates a reply; the parent must be a
// top-level comment of the same post.
func (h *CreateCommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id: must be an integer")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1*1024*1024)

	var input createCommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	created, err := h.service.CreateComment(r.Context(), comments.CreateCommentRequest{
		PostID:          postID,
		ParentCommentID: input.ParentCommentID,
		Content:         input.Content,
		Author:          input.Author,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"id": created.ID,
	}); err != nil {
		log.Printf("Failed to encode comment creation response: %v", err)
	}
}
