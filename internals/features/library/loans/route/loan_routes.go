package route

import (
	"github.com/gofiber/fiber/v2"

	"library_backend/internals/features/library/loans/controller"
	"library_backend/internals/features/library/loans/service"
)

// LoanRoutes mounts /loans on r.
func LoanRoutes(r fiber.Router, svc *service.LoanService) {
	ctl := &controller.LoansController{Svc: svc}

	loans := r.Group("/loans")
	loans.Get("/", ctl.List)
	loans.Get("/new", ctl.NewForm)
	loans.Post("/", ctl.Create)
	loans.Post("/new", ctl.Create) // form posts back to /loans/new
	loans.Get("/return/:id", ctl.ReturnForm)
	loans.Put("/return/:id", ctl.Return)
}
