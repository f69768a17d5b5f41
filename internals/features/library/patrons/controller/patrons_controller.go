// internals/features/library/patrons/controller/patrons_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"

	"library_backend/internals/features/library/listing"
	"library_backend/internals/features/library/patrons/dto"
	"library_backend/internals/features/library/patrons/service"
	helper "library_backend/internals/helpers"
)

type PatronsController struct {
	Svc *service.PatronService
}

/* ===================== LIST - GET /patrons?q=&page= ===================== */
func (h *PatronsController) List(c *fiber.Ctx) error {
	var q dto.PatronsListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	req := listing.Request{Q: utils.ImmutableString(q.Q), Page: helper.ResolvePage(c)}

	res, err := h.Svc.List(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err, nil)
	}
	return helper.JsonListEx(c, "patrons", dto.FromModels(res.Items), res.Pagination(), fiber.Map{
		"q": res.Query,
	})
}

/* ===================== NEW FORM - GET /patrons/new ===================== */
func (h *PatronsController) NewForm(c *fiber.Ctx) error {
	return helper.JsonOK(c, "new patron", dto.PatronRequest{})
}

/* ===================== CREATE - POST /patrons ===================== */
func (h *PatronsController) Create(c *fiber.Ctx) error {
	var req dto.PatronRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	m, err := h.Svc.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err, req)
	}
	return helper.JsonCreated(c, "patron created", dto.FromModel(m))
}

/* ===================== DETAIL - GET /patrons/details/:id ===================== */
func (h *PatronsController) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, loans, err := h.Svc.GetWithLoans(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, nil)
	}
	return helper.JsonOK(c, "patron details", dto.ToDetail(m, loans, h.Svc.Today()))
}

/* ===================== UPDATE - PUT /patrons/details/:id ===================== */
func (h *PatronsController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.PatronRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	m, err := h.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return h.fail(c, err, fiber.Map{"id": id, "patron": req})
	}
	return helper.JsonUpdated(c, "patron updated", dto.FromModel(m))
}

/* ===================== DELETE CONFIRM - GET /patrons/delete/:id ===================== */
func (h *PatronsController) DeleteInfo(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, n, err := h.Svc.DeleteInfo(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, nil)
	}
	return helper.JsonOK(c, "confirm delete", dto.PatronDeleteInfo{Patron: dto.FromModel(m), LoanCount: n})
}

/* ===================== DELETE - PUT /patrons/delete/:id, DELETE /patrons/:id ===================== */
func (h *PatronsController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	removed, err := h.Svc.Delete(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, nil)
	}
	return helper.JsonDeleted(c, "patron deleted", fiber.Map{"id": id, "loans_deleted": removed})
}

func (h *PatronsController) fail(c *fiber.Ctx, err error, submitted any) error {
	if ve, ok := helper.AsValidationError(err); ok {
		return helper.JsonValidationError(c, ve.Fields, submitted)
	}
	if errors.Is(err, service.ErrPatronNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "patron not found")
	}
	if status, msg := helper.MapPGError(err); status != fiber.StatusInternalServerError {
		return helper.JsonError(c, status, msg)
	}
	log.Printf("[ERROR] patrons: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}
