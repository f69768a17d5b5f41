package availability

import (
	"gorm.io/gorm"

	"library_backend/internals/helpers/dbtime"
)

const (
	activeLoanSQL  = "loans.returned_on IS NULL"
	overdueLoanSQL = "loans.returned_on IS NULL AND loans.return_by IS NOT NULL AND loans.return_by < ?"
	checkedLoanSQL = "loans.returned_on IS NULL AND loans.return_by IS NOT NULL"

	// most recent loan per book is still open
	latestLoanOpenSQL = `SELECT l.book_id FROM loans l
		WHERE l.returned_on IS NULL
		  AND l.id = (SELECT l2.id FROM loans l2 WHERE l2.book_id = l.book_id ORDER BY l2.loaned_on DESC, l2.id DESC LIMIT 1)`
)

// OverdueLoans scopes a query on loans to active loans past their return date.
func OverdueLoans(today dbtime.Date) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(overdueLoanSQL, today)
	}
}

// CheckedOutLoans scopes a query on loans to active loans with a return date.
func CheckedOutLoans() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(checkedLoanSQL)
	}
}

// ActiveLoans scopes a query on loans to loans not yet returned.
func ActiveLoans() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(activeLoanSQL)
	}
}

// LoansWithFilter scopes a query on loans. FilterAvailable means returned loans.
func LoansWithFilter(f Filter, today dbtime.Date) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch f {
		case FilterOverdue:
			return db.Scopes(OverdueLoans(today))
		case FilterCheckedOut:
			return db.Scopes(CheckedOutLoans())
		case FilterAvailable:
			return db.Where("loans.returned_on IS NOT NULL")
		default:
			return db
		}
	}
}

// BooksWithFilter scopes a query on books. Loan predicates go through an
// id IN (subquery) so a book with several matching loans appears once.
func BooksWithFilter(f Filter, today dbtime.Date) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch f {
		case FilterOverdue:
			return db.Where("books.id IN (SELECT loans.book_id FROM loans WHERE "+overdueLoanSQL+")", today)
		case FilterCheckedOut:
			return db.Where("books.id IN (SELECT loans.book_id FROM loans WHERE " + checkedLoanSQL + ")")
		case FilterAvailable:
			return db.Where("books.id NOT IN (" + latestLoanOpenSQL + ")")
		default:
			return db
		}
	}
}
