package route

import (
	"github.com/gofiber/fiber/v2"

	"library_backend/internals/features/library/patrons/controller"
	"library_backend/internals/features/library/patrons/service"
)

// PatronRoutes mounts /patrons on r.
func PatronRoutes(r fiber.Router, svc *service.PatronService) {
	ctl := &controller.PatronsController{Svc: svc}

	patrons := r.Group("/patrons")
	patrons.Get("/", ctl.List)
	patrons.Get("/new", ctl.NewForm)
	patrons.Post("/", ctl.Create)
	patrons.Get("/details/:id", ctl.Detail)
	patrons.Put("/details/:id", ctl.Update)
	patrons.Get("/delete/:id", ctl.DeleteInfo) // confirmation
	patrons.Put("/delete/:id", ctl.Delete)
	patrons.Delete("/:id", ctl.Delete)
}
