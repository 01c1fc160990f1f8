package routes

import (
	"Bulletin/internal/api/handlers/comments"
	commentsCore "Bulletin/internal/core/comments"

	"github.com/go-chi/chi/v5"
)

// RegisterCommentRoutes registers comment endpoints on the router
func RegisterCommentRoutes(r chi.Router, service commentsCore.Service) {
	createHandler := comments.NewCreateCommentHandler(service)
	getHandler := comments.NewGetCommentsHandler(service)

	r.Post("/posts/{postId}/comments", createHandler.HandleCreate)
	r.Get("/posts/{postId}/comments", getHandler.HandleGetComments)
}
