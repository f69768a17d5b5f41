package availability

import (
	bookModel "library_backend/internals/features/library/books/model"
	loanModel "library_backend/internals/features/library/loans/model"
	"library_backend/internals/helpers/dbtime"
)

// MatchLoan applies a loan-level filter. FilterAvailable is a book-level
// notion, so for a single loan it means "returned".
func MatchLoan(f Filter, l loanModel.LoanModel, today dbtime.Date) bool {
	switch f {
	case FilterOverdue:
		return IsOverdue(l, today)
	case FilterCheckedOut:
		return IsCheckedOut(l)
	case FilterAvailable:
		return l.IsReturned()
	default:
		return true
	}
}

// FilterBooks keeps the books matching f, preserving input order.
// FilterAll returns books unchanged.
func FilterBooks(books []bookModel.BookModel, loans []loanModel.LoanModel, f Filter, today dbtime.Date) []bookModel.BookModel {
	if f == FilterAll {
		return books
	}

	var keep func(id uint) bool
	switch f {
	case FilterAvailable:
		latest := LatestLoanByBook(loans)
		keep = func(id uint) bool { return IsAvailable(id, latest) }
	default:
		p := Classify(loans, today)
		ids := p.CheckedOut
		if f == FilterOverdue {
			ids = p.Overdue
		}
		set := idSet(ids)
		keep = func(id uint) bool { _, ok := set[id]; return ok }
	}

	out := make([]bookModel.BookModel, 0, len(books))
	for _, b := range books {
		if keep(b.ID) {
			out = append(out, b)
		}
	}
	return out
}
