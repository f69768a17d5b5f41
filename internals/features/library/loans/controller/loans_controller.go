// internals/features/library/loans/controller/loans_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"library_backend/internals/features/library/availability"
	"library_backend/internals/features/library/loans/dto"
	"library_backend/internals/features/library/loans/service"
	helper "library_backend/internals/helpers"
)

type LoansController struct {
	Svc *service.LoanService
}

/* ===== LIST - GET /loans?filter=overdue|checked_out ===== */
func (h *LoansController) List(c *fiber.Ctx) error {
	var q dto.LoansListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	filter := availability.ParseFilter(q.Filter)

	loans, err := h.Svc.List(c.UserContext(), filter)
	if err != nil {
		return h.fail(c, err, nil)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "loans",
		"data":     dto.FromModels(loans, h.Svc.Today()),
		"includes": fiber.Map{"filter": filter.String()},
	})
}

/* ===== NEW FORM - GET /loans/new ===== */
func (h *LoansController) NewForm(c *fiber.Ctx) error {
	fd, err := h.Svc.NewFormData(c.UserContext())
	if err != nil {
		return h.fail(c, err, nil)
	}
	return helper.JsonOK(c, "new loan", dto.LoanFormResponse{
		Books:    dto.BookOptions(fd.Books),
		Patrons:  dto.PatronOptions(fd.Patrons),
		LoanedOn: fd.LoanedOn,
		ReturnBy: fd.ReturnBy,
	})
}

/* ===== CREATE - POST /loans, POST /loans/new ===== */
func (h *LoansController) Create(c *fiber.Ctx) error {
	var req dto.LoanRequest
	var submitted any
	if err := c.BodyParser(&req); err != nil {
		// an id that does not decode is a field error, not a bad request
		raw, ok := rawLoanFields(c)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
		}
		req = dto.LoanRequestFromRaw(raw)
		submitted = raw
	} else {
		submitted = req
	}
	m, err := h.Svc.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err, submitted)
	}
	return helper.JsonCreated(c, "loan created", dto.FromModel(m, h.Svc.Today()))
}

/* ===== RETURN FORM - GET /loans/return/:id ===== */
func (h *LoansController) ReturnForm(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := h.Svc.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, nil)
	}
	today := h.Svc.Today()
	return helper.JsonOK(c, "return loan", dto.ReturnFormResponse{Loan: dto.FromModel(m, today), Today: today})
}

/* ===== RETURN - PUT /loans/return/:id ===== */
func (h *LoansController) Return(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := h.Svc.Return(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, nil)
	}
	return helper.JsonUpdated(c, "loan returned", dto.FromModel(m, h.Svc.Today()))
}

// rawLoanFields reads the submitted loan fields as text, from a JSON body or a form.
func rawLoanFields(c *fiber.Ctx) (map[string]string, bool) {
	out := make(map[string]string, len(dto.LoanFields))
	ct := utils.ToLower(string(c.Request().Header.ContentType()))
	if strings.HasPrefix(ct, fiber.MIMEApplicationJSON) {
		var body map[string]any
		if err := c.App().Config().JSONDecoder(c.Body(), &body); err != nil {
			return nil, false
		}
		for _, k := range dto.LoanFields {
			if v, ok := body[k]; ok && v != nil {
				out[k] = fmt.Sprint(v)
			}
		}
		return out, true
	}
	for _, k := range dto.LoanFields {
		out[k] = utils.CopyString(c.FormValue(k))
	}
	return out, true
}

func (h *LoansController) fail(c *fiber.Ctx, err error, submitted any) error {
	if ve, ok := helper.AsValidationError(err); ok {
		return helper.JsonValidationError(c, ve.Fields, submitted)
	}
	switch {
	case errors.Is(err, service.ErrLoanNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "loan not found")
	case errors.Is(err, service.ErrLoanAlreadyReturned):
		return helper.JsonError(c, fiber.StatusConflict, "loan already returned")
	}
	if status, msg := helper.MapPGError(err); status != fiber.StatusInternalServerError {
		return helper.JsonError(c, status, msg)
	}
	log.Printf("[ERROR] loans: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}
