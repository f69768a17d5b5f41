// internals/features/library/patrons/dto/patron_dto.go
package dto

import (
	"strings"
	"time"

	"library_backend/internals/features/library/availability"
	loanModel "library_backend/internals/features/library/loans/model"
	"library_backend/internals/features/library/patrons/model"
	"library_backend/internals/helpers/dbtime"
)

/* =========================
   REQUEST
========================= */

type PatronRequest struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required"`
	LastName  string `json:"last_name"  form:"last_name"  validate:"required"`
	Address   string `json:"address"    form:"address"    validate:"required"`
	Email     string `json:"email"      form:"email"      validate:"required,email"`
	LibraryID string `json:"library_id" form:"library_id" validate:"required"`
	ZipCode   string `json:"zip_code"   form:"zip_code"   validate:"required,numeric"`
}

var PatronMessages = map[string]string{
	"first_name": "Please enter a first name",
	"last_name":  "Please enter a last name",
	"address":    "Please enter an address",
	"email":      "Please enter a valid email",
	"library_id": "Please enter a Library ID",
	"zip_code":   "Please enter a zip code",
}

type PatronsListQuery struct {
	Q string `query:"q"`
}

/* =========================
   RESPONSE
========================= */

type PatronResponse struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	LibraryID string    `json:"library_id"`
	ZipCode   string    `json:"zip_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PatronLoanItem struct {
	ID         uint         `json:"id"`
	BookID     uint         `json:"book_id"`
	BookTitle  string       `json:"book_title"`
	LoanedOn   dbtime.Date  `json:"loaned_on"`
	ReturnBy   dbtime.Date  `json:"return_by"`
	ReturnedOn *dbtime.Date `json:"returned_on"`
	Status     string       `json:"status"`
}

type PatronDetailResponse struct {
	PatronResponse
	Loans []PatronLoanItem `json:"loans"`
}

// PatronDeleteInfo is shown before a delete is confirmed.
type PatronDeleteInfo struct {
	Patron    PatronResponse `json:"patron"`
	LoanCount int64          `json:"loan_count"`
}

/* =========================
   MAPPER
========================= */

func (r *PatronRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Address = strings.TrimSpace(r.Address)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.LibraryID = strings.TrimSpace(r.LibraryID)
	r.ZipCode = strings.TrimSpace(r.ZipCode)
}

func (r PatronRequest) ToModel() *model.PatronModel {
	m := &model.PatronModel{}
	r.ApplyToModel(m)
	return m
}

func (r PatronRequest) ApplyToModel(m *model.PatronModel) {
	m.FirstName = r.FirstName
	m.LastName = r.LastName
	m.Address = r.Address
	m.Email = r.Email
	m.LibraryID = r.LibraryID
	m.ZipCode = r.ZipCode
}

func FromModel(m *model.PatronModel) PatronResponse {
	return PatronResponse{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Address:   m.Address,
		Email:     m.Email,
		LibraryID: m.LibraryID,
		ZipCode:   m.ZipCode,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(ms []model.PatronModel) []PatronResponse {
	out := make([]PatronResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

func ToDetail(m *model.PatronModel, loans []loanModel.LoanModel, today dbtime.Date) PatronDetailResponse {
	items := make([]PatronLoanItem, 0, len(loans))
	for _, l := range loans {
		it := PatronLoanItem{
			ID:         l.ID,
			BookID:     l.BookID,
			LoanedOn:   l.LoanedOn,
			ReturnBy:   l.ReturnBy,
			ReturnedOn: l.ReturnedOn,
			Status:     availability.Status(l, today),
		}
		if l.Book != nil {
			it.BookTitle = l.Book.Title
		}
		items = append(items, it)
	}
	return PatronDetailResponse{PatronResponse: FromModel(m), Loans: items}
}
