package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	bookModel "library_backend/internals/features/library/books/model"
	loanModel "library_backend/internals/features/library/loans/model"
	patronModel "library_backend/internals/features/library/patrons/model"
)

// Migrate creates or updates the books, patrons and loans tables.
// Parents are migrated first so the loan foreign keys can be created.
func Migrate(db *gorm.DB) error {
	log.Println("[INFO] running auto-migration...")
	if err := db.AutoMigrate(
		&bookModel.BookModel{},
		&patronModel.PatronModel{},
		&loanModel.LoanModel{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
