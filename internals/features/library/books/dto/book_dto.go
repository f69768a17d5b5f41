// internals/features/library/books/dto/book_dto.go
package dto

import (
	"strings"
	"time"

	"library_backend/internals/features/library/availability"
	"library_backend/internals/features/library/books/model"
	loanModel "library_backend/internals/features/library/loans/model"
	"library_backend/internals/helpers/dbtime"
)

// ======================================================
// REQUEST
// ======================================================

type BookRequest struct {
	Title          string `json:"title"           form:"title"           validate:"required"`
	Author         string `json:"author"          form:"author"          validate:"required"`
	Genre          string `json:"genre"           form:"genre"           validate:"required"`
	FirstPublished int    `json:"first_published" form:"first_published" validate:"required,gte=1,lte=9999"`
}

// BookMessages are shown next to the form field that failed.
var BookMessages = map[string]string{
	"title":           "Please enter a title",
	"author":          "Please enter the author's name",
	"genre":           "Please enter the book's genre",
	"first_published": "Please specify the year that the book was published",
}

type BooksListQuery struct {
	Q      string `query:"q"`
	Filter string `query:"filter"`
}

// ======================================================
// RESPONSE
// ======================================================

type BookResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Genre          string    `json:"genre"`
	FirstPublished int       `json:"first_published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Status         string    `json:"status,omitempty"`
}

type BookLoanItem struct {
	ID         uint         `json:"id"`
	PatronID   uint         `json:"patron_id"`
	PatronName string       `json:"patron_name"`
	LoanedOn   dbtime.Date  `json:"loaned_on"`
	ReturnBy   dbtime.Date  `json:"return_by"`
	ReturnedOn *dbtime.Date `json:"returned_on"`
	Status     string       `json:"status"`
}

type BookDetailResponse struct {
	BookResponse
	Available bool           `json:"available"`
	Loans     []BookLoanItem `json:"loans"`
}

// ======================================================
// NORMALIZER / MAPPER
// ======================================================

func (r *BookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Genre = strings.TrimSpace(r.Genre)
}

func (r BookRequest) ToModel() *model.BookModel {
	return &model.BookModel{
		Title:          r.Title,
		Author:         r.Author,
		Genre:          r.Genre,
		FirstPublished: r.FirstPublished,
	}
}

func (r BookRequest) ApplyToModel(m *model.BookModel) {
	m.Title = r.Title
	m.Author = r.Author
	m.Genre = r.Genre
	m.FirstPublished = r.FirstPublished
}

func FromModel(m *model.BookModel) BookResponse {
	return BookResponse{
		ID:             m.ID,
		Title:          m.Title,
		Author:         m.Author,
		Genre:          m.Genre,
		FirstPublished: m.FirstPublished,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromModels maps a page of books; statuses is keyed by book id and may be nil.
func FromModels(ms []model.BookModel, statuses map[uint]string) []BookResponse {
	out := make([]BookResponse, 0, len(ms))
	for i := range ms {
		r := FromModel(&ms[i])
		r.Status = statuses[ms[i].ID]
		out = append(out, r)
	}
	return out
}

func ToDetail(m *model.BookModel, loans []loanModel.LoanModel, today dbtime.Date) BookDetailResponse {
	items := make([]BookLoanItem, 0, len(loans))
	for _, l := range loans {
		it := BookLoanItem{
			ID:         l.ID,
			PatronID:   l.PatronID,
			LoanedOn:   l.LoanedOn,
			ReturnBy:   l.ReturnBy,
			ReturnedOn: l.ReturnedOn,
			Status:     availability.Status(l, today),
		}
		if l.Patron != nil {
			it.PatronName = l.Patron.FullName()
		}
		items = append(items, it)
	}
	status := availability.BookStatuses([]uint{m.ID}, loans, today)[m.ID]
	resp := BookDetailResponse{BookResponse: FromModel(m), Available: status == availability.BookAvailable, Loans: items}
	resp.Status = status
	return resp
}
