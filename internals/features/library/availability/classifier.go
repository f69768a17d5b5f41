// Package availability derives loan and book status from loan dates.
//
// A loan is active while returned_on is unset. An active loan is checked out
// when it has a return_by date, and overdue when that date is before today.
// Every overdue loan is therefore also checked out. A book is available when it
// has no loans, or when its most recent loan has been returned.
package availability

import (
	"sort"

	loanModel "library_backend/internals/features/library/loans/model"
	"library_backend/internals/helpers/dbtime"
)

func IsActive(l loanModel.LoanModel) bool { return !l.IsReturned() }

func IsCheckedOut(l loanModel.LoanModel) bool {
	return IsActive(l) && !l.ReturnBy.IsZero()
}

func IsOverdue(l loanModel.LoanModel, today dbtime.Date) bool {
	return IsCheckedOut(l) && l.ReturnBy.Before(today)
}

// Partition holds deduplicated, ascending book ids per bucket.
type Partition struct {
	Overdue    []uint
	CheckedOut []uint
}

// Classify partitions the books referenced by loans.
func Classify(loans []loanModel.LoanModel, today dbtime.Date) Partition {
	overdue := map[uint]struct{}{}
	checked := map[uint]struct{}{}
	for _, l := range loans {
		if IsCheckedOut(l) {
			checked[l.BookID] = struct{}{}
			if l.ReturnBy.Before(today) {
				overdue[l.BookID] = struct{}{}
			}
		}
	}
	return Partition{
		Overdue:    sortedIDs(overdue),
		CheckedOut: sortedIDs(checked),
	}
}

// LatestLoanByBook picks each book's most recent loan: latest loaned_on, ties broken by higher id.
func LatestLoanByBook(loans []loanModel.LoanModel) map[uint]loanModel.LoanModel {
	out := make(map[uint]loanModel.LoanModel, len(loans))
	for _, l := range loans {
		cur, ok := out[l.BookID]
		if !ok || l.LoanedOn.After(cur.LoanedOn) || (l.LoanedOn.Equal(cur.LoanedOn) && l.ID > cur.ID) {
			out[l.BookID] = l
		}
	}
	return out
}

// IsAvailable reports whether a book with the given latest loans can be lent.
func IsAvailable(bookID uint, latest map[uint]loanModel.LoanModel) bool {
	l, ok := latest[bookID]
	return !ok || l.IsReturned()
}

// Book-level status labels.
const (
	BookOverdue    = "overdue"
	BookCheckedOut = "checked_out"
	BookAvailable  = "available"
	BookOnLoan     = "on_loan"
)

// BookStatuses labels each of bookIDs from the loans of those books.
// Overdue wins over checked out; a book with no open dated loan is available
// when its latest loan is returned.
func BookStatuses(bookIDs []uint, loans []loanModel.LoanModel, today dbtime.Date) map[uint]string {
	p := Classify(loans, today)
	overdue := idSet(p.Overdue)
	checked := idSet(p.CheckedOut)
	latest := LatestLoanByBook(loans)

	out := make(map[uint]string, len(bookIDs))
	for _, id := range bookIDs {
		_, isOverdue := overdue[id]
		_, isChecked := checked[id]
		switch {
		case isOverdue:
			out[id] = BookOverdue
		case isChecked:
			out[id] = BookCheckedOut
		case IsAvailable(id, latest):
			out[id] = BookAvailable
		default:
			out[id] = BookOnLoan
		}
	}
	return out
}

func idSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func sortedIDs(set map[uint]struct{}) []uint {
	ids := make([]uint, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Loan status labels for responses.
const (
	StatusReturned   = "returned"
	StatusOverdue    = "overdue"
	StatusCheckedOut = "checked_out"
	StatusActive     = "active"
)

// Status labels a loan as of today. Overdue wins over checked out.
func Status(l loanModel.LoanModel, today dbtime.Date) string {
	switch {
	case l.IsReturned():
		return StatusReturned
	case IsOverdue(l, today):
		return StatusOverdue
	case IsCheckedOut(l):
		return StatusCheckedOut
	default:
		return StatusActive
	}
}
