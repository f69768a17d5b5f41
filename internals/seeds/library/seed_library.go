package library

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	bookModel "library_backend/internals/features/library/books/model"
	loanModel "library_backend/internals/features/library/loans/model"
	patronModel "library_backend/internals/features/library/patrons/model"
	"library_backend/internals/helpers/dbtime"
)

type BookSeed struct {
	Title          string `json:"title"`
	Author         string `json:"author"`
	Genre          string `json:"genre"`
	FirstPublished int    `json:"first_published"`
}

type PatronSeed struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	LibraryID string `json:"library_id"`
	ZipCode   string `json:"zip_code"`
}

// LoanSeed points at its book by title and its patron by library id.
type LoanSeed struct {
	BookTitle  string       `json:"book_title"`
	LibraryID  string       `json:"library_id"`
	LoanedOn   dbtime.Date  `json:"loaned_on"`
	ReturnBy   dbtime.Date  `json:"return_by"`
	ReturnedOn *dbtime.Date `json:"returned_on"`
}

func readJSON(filePath string, out any) error {
	log.Println("[SEED] reading", filePath)
	b, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}
	return nil
}

// SeedBooksFromJSON inserts the books whose title is not in the table yet.
func SeedBooksFromJSON(db *gorm.DB, filePath string) error {
	var seeds []BookSeed
	if err := readJSON(filePath, &seeds); err != nil {
		return err
	}

	var existing []string
	if err := db.Model(&bookModel.BookModel{}).Pluck("title", &existing).Error; err != nil {
		return fmt.Errorf("existing books: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[t] = true
	}

	var rows []bookModel.BookModel
	for _, s := range seeds {
		if seen[s.Title] {
			log.Printf("[SEED] book %q exists, skipped", s.Title)
			continue
		}
		seen[s.Title] = true
		rows = append(rows, bookModel.BookModel{
			Title:          s.Title,
			Author:         s.Author,
			Genre:          s.Genre,
			FirstPublished: s.FirstPublished,
		})
	}
	if len(rows) == 0 {
		log.Println("[SEED] no new books")
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert books: %w", err)
	}
	log.Printf("[SEED] inserted %d books", len(rows))
	return nil
}

// SeedPatronsFromJSON inserts the patrons whose library id is not in the table yet.
func SeedPatronsFromJSON(db *gorm.DB, filePath string) error {
	var seeds []PatronSeed
	if err := readJSON(filePath, &seeds); err != nil {
		return err
	}

	var existing []string
	if err := db.Model(&patronModel.PatronModel{}).Pluck("library_id", &existing).Error; err != nil {
		return fmt.Errorf("existing patrons: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}

	var rows []patronModel.PatronModel
	for _, s := range seeds {
		if seen[s.LibraryID] {
			log.Printf("[SEED] patron %s exists, skipped", s.LibraryID)
			continue
		}
		seen[s.LibraryID] = true
		rows = append(rows, patronModel.PatronModel{
			FirstName: s.FirstName,
			LastName:  s.LastName,
			Address:   s.Address,
			Email:     s.Email,
			LibraryID: s.LibraryID,
			ZipCode:   s.ZipCode,
		})
	}
	if len(rows) == 0 {
		log.Println("[SEED] no new patrons")
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert patrons: %w", err)
	}
	log.Printf("[SEED] inserted %d patrons", len(rows))
	return nil
}

// SeedLoansFromJSON inserts loans whose book and patron exist. A loan with the
// same book, patron and loan date is treated as already seeded.
func SeedLoansFromJSON(db *gorm.DB, filePath string) error {
	var seeds []LoanSeed
	if err := readJSON(filePath, &seeds); err != nil {
		return err
	}

	inserted := 0
	for _, s := range seeds {
		var book bookModel.BookModel
		if err := db.Where("title = ?", s.BookTitle).Order("id").Limit(1).Find(&book).Error; err != nil {
			return fmt.Errorf("book %q: %w", s.BookTitle, err)
		}
		var patron patronModel.PatronModel
		if err := db.Where("library_id = ?", s.LibraryID).Order("id").Limit(1).Find(&patron).Error; err != nil {
			return fmt.Errorf("patron %s: %w", s.LibraryID, err)
		}
		if book.ID == 0 || patron.ID == 0 {
			log.Printf("[SEED] loan %q -> %s has no book or patron, skipped", s.BookTitle, s.LibraryID)
			continue
		}

		var n int64
		if err := db.Model(&loanModel.LoanModel{}).
			Where("book_id = ? AND patron_id = ? AND loaned_on = ?", book.ID, patron.ID, s.LoanedOn).
			Count(&n).Error; err != nil {
			return fmt.Errorf("existing loan: %w", err)
		}
		if n > 0 {
			continue
		}

		row := loanModel.LoanModel{
			BookID:     book.ID,
			PatronID:   patron.ID,
			LoanedOn:   s.LoanedOn,
			ReturnBy:   s.ReturnBy,
			ReturnedOn: s.ReturnedOn,
		}
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("insert loan %q -> %s: %w", s.BookTitle, s.LibraryID, err)
		}
		inserted++
	}
	log.Printf("[SEED] inserted %d loans", inserted)
	return nil
}
