package route

import (
	"github.com/gofiber/fiber/v2"

	"library_backend/internals/features/library/books/controller"
	"library_backend/internals/features/library/books/service"
)

// BookRoutes mounts /books on r.
func BookRoutes(r fiber.Router, svc *service.BookService) {
	ctl := &controller.BooksController{Svc: svc}

	books := r.Group("/books")
	books.Get("/", ctl.List)                // list / search / filter
	books.Get("/new", ctl.NewForm)          // empty form
	books.Post("/", ctl.Create)             // create
	books.Get("/details/:id", ctl.Detail)   // book + loan history
	books.Put("/details/:id", ctl.Update)   // update
}
