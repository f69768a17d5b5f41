package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "library_backend/internals/features/library/books/model"
	"library_backend/internals/features/library/librarytest"
	loanModel "library_backend/internals/features/library/loans/model"
	patronModel "library_backend/internals/features/library/patrons/model"
	"library_backend/internals/seeds/library"
)

func Test_SeedFromJSON_Idempotent(t *testing.T) {
	db := librarytest.OpenDB(t)

	for i := 0; i < 2; i++ {
		require.NoError(t, library.SeedBooksFromJSON(db, "data_books.json"))
		require.NoError(t, library.SeedPatronsFromJSON(db, "data_patrons.json"))
		require.NoError(t, library.SeedLoansFromJSON(db, "data_loans.json"))
	}

	var books, patrons, loans, open int64
	require.NoError(t, db.Model(&bookModel.BookModel{}).Count(&books).Error)
	require.NoError(t, db.Model(&patronModel.PatronModel{}).Count(&patrons).Error)
	require.NoError(t, db.Model(&loanModel.LoanModel{}).Count(&loans).Error)
	require.NoError(t, db.Model(&loanModel.LoanModel{}).Where("returned_on IS NULL").Count(&open).Error)

	assert.Equal(t, int64(12), books)
	assert.Equal(t, int64(5), patrons)
	assert.Equal(t, int64(5), loans)
	assert.Equal(t, int64(3), open)
}

func Test_SeedFromJSON_MissingFile(t *testing.T) {
	db := librarytest.OpenDB(t)
	assert.Error(t, library.SeedBooksFromJSON(db, "does_not_exist.json"))
}
