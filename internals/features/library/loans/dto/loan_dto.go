// internals/features/library/loans/dto/loan_dto.go
package dto

import (
	"strconv"
	"strings"
	"time"

	"library_backend/internals/features/library/availability"
	bookModel "library_backend/internals/features/library/books/model"
	"library_backend/internals/features/library/loans/model"
	patronModel "library_backend/internals/features/library/patrons/model"
	"library_backend/internals/helpers/dbtime"
)

/* =========================
   REQUEST
========================= */

// LoanRequest keeps the dates as submitted so a bad value can be echoed back.
type LoanRequest struct {
	BookID   uint   `json:"book_id"   form:"book_id"   validate:"required"`
	PatronID uint   `json:"patron_id" form:"patron_id" validate:"required"`
	LoanedOn string `json:"loaned_on" form:"loaned_on" validate:"required,datetime=2006-01-02"`
	ReturnBy string `json:"return_by" form:"return_by" validate:"required,datetime=2006-01-02"`
}

var LoanMessages = map[string]string{
	"book_id":   "Please select a book from the list",
	"patron_id": "Please select a patron from the list",
	"loaned_on": "Please enter the date the book is being loaned",
	"return_by": "Please enter the date when the book should be returned",
}

const (
	MsgReturnBeforeLoan = "The return date cannot be before the loan date"
	MsgBookOnLoan       = "This book is already on loan"
)

type LoansListQuery struct {
	Filter string `query:"filter"`
}

// LoanFields are the keys of a loan submission.
var LoanFields = []string{"book_id", "patron_id", "loaned_on", "return_by"}

// LoanRequestFromRaw builds a request from text values. An id that is not a
// positive integer is left at zero so validation reports it on its field.
func LoanRequestFromRaw(raw map[string]string) LoanRequest {
	return LoanRequest{
		BookID:   parseID(raw["book_id"]),
		PatronID: parseID(raw["patron_id"]),
		LoanedOn: raw["loaned_on"],
		ReturnBy: raw["return_by"],
	}
}

func parseID(s string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

func (r *LoanRequest) Normalize() {
	r.LoanedOn = strings.TrimSpace(r.LoanedOn)
	r.ReturnBy = strings.TrimSpace(r.ReturnBy)
}

/* =========================
   RESPONSE
========================= */

type LoanResponse struct {
	ID         uint         `json:"id"`
	BookID     uint         `json:"book_id"`
	BookTitle  string       `json:"book_title,omitempty"`
	PatronID   uint         `json:"patron_id"`
	PatronName string       `json:"patron_name,omitempty"`
	LoanedOn   dbtime.Date  `json:"loaned_on"`
	ReturnBy   dbtime.Date  `json:"return_by"`
	ReturnedOn *dbtime.Date `json:"returned_on"`
	Status     string       `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type Option struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

// LoanFormResponse feeds the new-loan form.
type LoanFormResponse struct {
	Books    []Option    `json:"books"`
	Patrons  []Option    `json:"patrons"`
	LoanedOn dbtime.Date `json:"loaned_on"`
	ReturnBy dbtime.Date `json:"return_by"`
}

type ReturnFormResponse struct {
	Loan  LoanResponse `json:"loan"`
	Today dbtime.Date  `json:"today"`
}

func FromModel(m *model.LoanModel, today dbtime.Date) LoanResponse {
	out := LoanResponse{
		ID:         m.ID,
		BookID:     m.BookID,
		PatronID:   m.PatronID,
		LoanedOn:   m.LoanedOn,
		ReturnBy:   m.ReturnBy,
		ReturnedOn: m.ReturnedOn,
		Status:     availability.Status(*m, today),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Book != nil {
		out.BookTitle = m.Book.Title
	}
	if m.Patron != nil {
		out.PatronName = m.Patron.FullName()
	}
	return out
}

func FromModels(ms []model.LoanModel, today dbtime.Date) []LoanResponse {
	out := make([]LoanResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i], today))
	}
	return out
}

func BookOptions(bs []bookModel.BookModel) []Option {
	out := make([]Option, 0, len(bs))
	for _, b := range bs {
		out = append(out, Option{ID: b.ID, Label: b.Title})
	}
	return out
}

func PatronOptions(ps []patronModel.PatronModel) []Option {
	out := make([]Option, 0, len(ps))
	for _, p := range ps {
		out = append(out, Option{ID: p.ID, Label: p.FullName()})
	}
	return out
}
