package routes

import (
	"Bulletin/internal/api/handlers/post"
	"Bulletin/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers post endpoints on the router.
// Mutations are gated by the per-post password checked in the service, so
// no auth middleware is involved.
func RegisterPostRoutes(r chi.Router, service posts.Service) {
	createHandler := post.NewCreateHandler(service)
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)

	r.Post("/posts", createHandler.HandleCreate)
	r.Get("/posts", listHandler.HandleList)
	r.Get("/posts/{id}", getHandler.HandleGet)
	r.Patch("/posts/{id}", updateHandler.HandleUpdate)
	r.Delete("/posts/{id}", deleteHandler.HandleDelete)
}
