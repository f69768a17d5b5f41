// internals/features/library/books/controller/books_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"

	"library_backend/internals/features/library/availability"
	"library_backend/internals/features/library/books/dto"
	"library_backend/internals/features/library/books/service"
	"library_backend/internals/features/library/listing"
	helper "library_backend/internals/helpers"
)

type BooksController struct {
	Svc *service.BookService
}

/* =========================================================
   LIST - GET /books?filter=overdue|checked_out|available&q=&page=
   ========================================================= */
func (h *BooksController) List(c *fiber.Ctx) error {
	var q dto.BooksListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	filter := availability.ParseFilter(q.Filter)
	req := listing.Request{Q: utils.ImmutableString(q.Q), Page: helper.ResolvePage(c)}

	res, err := h.Svc.List(c.UserContext(), filter, req)
	if err != nil {
		return h.fail(c, err, nil)
	}
	statuses, err := h.Svc.Statuses(c.UserContext(), res.Items)
	if err != nil {
		return h.fail(c, err, nil)
	}
	return helper.JsonListEx(c, "books", dto.FromModels(res.Items, statuses), res.Pagination(), fiber.Map{
		"q":      res.Query,
		"filter": filter.String(),
	})
}

/* =========================================================
   NEW FORM - GET /books/new
   ========================================================= */
func (h *BooksController) NewForm(c *fiber.Ctx) error {
	return helper.JsonOK(c, "new book", dto.BookRequest{})
}

/* =========================================================
   CREATE - POST /books
   ========================================================= */
func (h *BooksController) Create(c *fiber.Ctx) error {
	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	m, err := h.Svc.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err, req)
	}
	return helper.JsonCreated(c, "book created", dto.FromModel(m))
}

/* =========================================================
   DETAIL - GET /books/details/:id
   ========================================================= */
func (h *BooksController) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, loans, err := h.Svc.GetWithLoans(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, nil)
	}
	return helper.JsonOK(c, "book details", dto.ToDetail(m, loans, h.Svc.Today()))
}

/* =========================================================
   UPDATE - PUT /books/details/:id
   ========================================================= */
func (h *BooksController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	m, err := h.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return h.fail(c, err, fiber.Map{"id": id, "book": req})
	}
	return helper.JsonUpdated(c, "book updated", dto.FromModel(m))
}

// fail maps service errors; submitted is echoed back on validation failure.
func (h *BooksController) fail(c *fiber.Ctx, err error, submitted any) error {
	if ve, ok := helper.AsValidationError(err); ok {
		return helper.JsonValidationError(c, ve.Fields, submitted)
	}
	if errors.Is(err, service.ErrBookNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "book not found")
	}
	if status, msg := helper.MapPGError(err); status != fiber.StatusInternalServerError {
		return helper.JsonError(c, status, msg)
	}
	log.Printf("[ERROR] books: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}
