package post

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"Bulletin/internal/core/posts"
)

// ListHandler handles cursor-paged post listing
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /posts?cursor={str}&limit={n}&title={str}&author={str}
// limit is clamped to [1,50] and defaults to 10.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
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

	req := posts.ListPostsRequest{
		Limit:  limit,
		Title:  query.Get("title"),
		Author: query.Get("author"),
	}
	if cursor := query.Get("cursor"); cursor != "" {
		req.Cursor = &cursor
	}

	result, err := h.service.ListPosts(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	response := map[string]interface{}{
		"posts":   result.Posts,
		"hasNext": result.HasNext,
	}
	if result.Posts == nil {
		response["posts"] = []*posts.Post{}
	}
	if result.NextCursor != nil {
		response["nextCursor"] = *result.NextCursor
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode post list response: %v", err)
	}
}
