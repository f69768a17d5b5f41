// Package librarytest opens a throwaway in-memory store and builds related
// books, patrons and loans for tests.
package librarytest

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/qawatake/fixify"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "library_backend/internals/databases"
	bookModel "library_backend/internals/features/library/books/model"
	loanModel "library_backend/internals/features/library/loans/model"
	patronModel "library_backend/internals/features/library/patrons/model"
	"library_backend/internals/helpers/dbtime"
)

// Today is the reference day most tests pin their clock to.
var Today = dbtime.NewDate(2024, time.January, 15)

// OpenDB returns a migrated in-memory SQLite store with foreign keys enforced.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection: every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Insert creates the fixture graph parents first, wiring foreign keys as it goes.
func Insert(t testing.TB, db *gorm.DB, models ...fixify.IModel) {
	t.Helper()
	fixify.New(t, models...).Iterate(func(v any) error {
		return db.Create(v).Error
	})
}

func Book(opts ...func(*bookModel.BookModel)) *fixify.Model[bookModel.BookModel] {
	b := &bookModel.BookModel{
		Title:          "Dune",
		Author:         "Frank Herbert",
		Genre:          "Science Fiction",
		FirstPublished: 1965,
	}
	for _, o := range opts {
		o(b)
	}
	return fixify.NewModel(b)
}

func Patron(opts ...func(*patronModel.PatronModel)) *fixify.Model[patronModel.PatronModel] {
	p := &patronModel.PatronModel{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address:   "12 St James's Square",
		Email:     "ada@example.com",
		LibraryID: "MCL1001",
		ZipCode:   "10001",
	}
	for _, o := range opts {
		o(p)
	}
	return fixify.NewModel(p)
}

// Loan is an active loan from Today-7 due Today+7 unless opts say otherwise.
// Connect it under both a Book and a Patron.
func Loan(opts ...func(*loanModel.LoanModel)) *fixify.Model[loanModel.LoanModel] {
	l := &loanModel.LoanModel{
		LoanedOn: Today.AddDays(-7),
		ReturnBy: Today.AddDays(7),
	}
	for _, o := range opts {
		o(l)
	}
	return fixify.NewModel(l,
		fixify.ConnectorFunc(func(_ testing.TB, loan *loanModel.LoanModel, book *bookModel.BookModel) {
			loan.BookID = book.ID
		}),
		fixify.ConnectorFunc(func(_ testing.TB, loan *loanModel.LoanModel, patron *patronModel.PatronModel) {
			loan.PatronID = patron.ID
		}),
	)
}

// Due sets the return date relative to Today.
func Due(days int) func(*loanModel.LoanModel) {
	return func(l *loanModel.LoanModel) { l.ReturnBy = Today.AddDays(days) }
}

// LoanedDaysAgo sets the loan date relative to Today.
func LoanedDaysAgo(days int) func(*loanModel.LoanModel) {
	return func(l *loanModel.LoanModel) { l.LoanedOn = Today.AddDays(-days) }
}

// Returned marks the loan returned on Today+days.
func Returned(days int) func(*loanModel.LoanModel) {
	return func(l *loanModel.LoanModel) {
		d := Today.AddDays(days)
		l.ReturnedOn = &d
	}
}

func Titled(title string) func(*bookModel.BookModel) {
	return func(b *bookModel.BookModel) { b.Title = title }
}

func Named(first, last string) func(*patronModel.PatronModel) {
	return func(p *patronModel.PatronModel) { p.FirstName, p.LastName = first, last }
}
