package seeds

import (
	"log"

	"gorm.io/gorm"

	library "library_backend/internals/seeds/library"
)

const dataDir = "internals/seeds/library/"

// RunAllSeeds loads the demo catalogue. Parents go first so loans can find
// their book and patron.
func RunAllSeeds(db *gorm.DB) {
	steps := []struct {
		name string
		run  func(*gorm.DB, string) error
		file string
	}{
		{"books", library.SeedBooksFromJSON, dataDir + "data_books.json"},
		{"patrons", library.SeedPatronsFromJSON, dataDir + "data_patrons.json"},
		{"loans", library.SeedLoansFromJSON, dataDir + "data_loans.json"},
	}
	for _, s := range steps {
		if err := s.run(db, s.file); err != nil {
			log.Printf("[ERROR] seed %s: %v", s.name, err)
			return
		}
	}
	log.Println("[SEED] done")
}
