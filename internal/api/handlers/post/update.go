package post

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Bulletin/internal/core/posts"
)

// UpdateHandler handles post updates and deletions. Both run through the
// same service operation, discriminated by the isDeleted flag.
type UpdateHandler struct {
	service posts.Service
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service posts.Service) *UpdateHandler {
	return &UpdateHandler{service: service}
}

type updatePostInput struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	IsDeleted *bool   `json:"isDeleted,omitempty"`
	Password  string  `json:"password"`
}

// HandleUpdate handles PATCH /posts/{id}
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id: must be an integer")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1*1024*1024)

	var input updatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	err = h.service.UpdatePost(r.Context(), posts.UpdatePostRequest{
		ID:        id,
		Title:     input.Title,
		Content:   input.Content,
		IsDeleted: input.IsDeleted,
		Password:  input.Password,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
