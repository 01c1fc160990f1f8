package post

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Bulletin/internal/core/posts"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

type deletePostInput struct {
	Password string `json:"password"`
}

// HandleDelete handles DELETE /posts/{id}
// Deletion is the update operation with the deletion flag set; the post is
// soft-deleted, never physically removed.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id: must be an integer")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1*1024*1024)

	var input deletePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	deleted := true
	err = h.service.UpdatePost(r.Context(), posts.UpdatePostRequest{
		ID:        id,
		IsDeleted: &deleted,
		Password:  input.Password,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
